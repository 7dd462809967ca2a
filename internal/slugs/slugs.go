// Package slugs provides filename slugification for files copied into a
// BCF archive.
//
// Archive entries travel across platforms and zip tooling, so copied-in
// file names are normalized to a safe ASCII-ish form while the extension is
// kept as-is.
package slugs

import (
	"strconv"
	"strings"

	goslug "github.com/gosimple/slug"
)

// FileSlug normalizes a file name for storage inside an archive: the stem
// is slugified, the extension is lowercased and kept.
func FileSlug(name string) string {
	stem, ext := splitExt(name)
	slugged := goslug.Make(stem)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(stem, " ", "-"))
	}
	return slugged + strings.ToLower(ext)
}

// NumberedSlug renders the collision form of a slugged name: "plan.pdf"
// with n=2 becomes "plan(2).pdf".
func NumberedSlug(name string, n int) string {
	stem, ext := splitExt(name)
	return stem + "(" + strconv.Itoa(n) + ")" + ext
}

// splitExt splits off the final extension including its dot. A name without
// a dot has an empty extension; a leading dot (hidden file) is part of the
// stem.
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}
