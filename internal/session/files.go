package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/openbcf/bcf/internal/model"
	"github.com/openbcf/bcf/internal/slugs"
)

// CopyFileIntoProject copies an external file into the scratch directory,
// either at the archive root or, when topic is non-nil, into that topic's
// directory. destName overrides the source file name; the stored name is
// slugified and suffixed with "(n)" on collision. Returns the archive-
// relative path of the stored file. The copy becomes part of the archive on
// the next Save.
func (s *Session) CopyFileIntoProject(path, destName string, topic *model.Topic) (string, error) {
	if s.archive == nil {
		return "", ErrClosed
	}

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("copy into project: %w", err)
	}
	defer src.Close()

	name := destName
	if name == "" {
		name = filepath.Base(path)
	}
	name = slugs.FileSlug(name)

	destDir := s.archive.Dir
	relDir := ""
	if topic != nil {
		_, markup, err := s.liveTopic(topic)
		if err != nil {
			return "", err
		}
		destDir = s.archive.TopicDir(markup)
		relDir = markup.TopicGUID().String()
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return "", fmt.Errorf("copy into project: %w", err)
		}
	}

	stored := name
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(destDir, stored)); os.IsNotExist(err) {
			break
		}
		stored = slugs.NumberedSlug(name, n)
	}

	dst, err := os.Create(filepath.Join(destDir, stored))
	if err != nil {
		return "", fmt.Errorf("copy into project: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copy into project: %w", err)
	}

	if relDir != "" {
		return filepath.ToSlash(filepath.Join(relDir, stored)), nil
	}
	return stored, nil
}
