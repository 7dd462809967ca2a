// Package archive reads and writes BCF 2.1 zip archives.
//
// An archive is extracted to a scratch directory on open; all edits are
// reconciled into that directory file by file and only hit the original zip
// on Save. The extracted layout is one project.bcf plus one directory per
// topic GUID holding markup.bcf and any viewpoint (.bcfv) and snapshot
// files.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/openbcf/bcf/internal/atomicfile"
	"github.com/openbcf/bcf/internal/model"
)

const (
	// ProjectFile is the archive-root project metadata file.
	ProjectFile = "project.bcf"
	// MarkupFile is the per-topic markup file name.
	MarkupFile = "markup.bcf"
	// VersionFile identifies the BCF format version of the archive.
	VersionFile = "bcf.version"
)

var (
	ErrNotAnArchive = errors.New("not a BCF archive")
	ErrNoMarkup     = errors.New("topic directory has no markup file")
)

// Archive is one extracted BCF file: the source path, the scratch
// directory, and the parsed project graph.
type Archive struct {
	Path    string
	Dir     string
	Project *model.Project
}

// Open extracts the zip at path into a scratch directory and parses the
// whole project graph. Every node loads with state Original.
func Open(path string) (*Archive, error) {
	dir, err := os.MkdirTemp("", "bcf-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	if err := extract(path, dir); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	project, err := ReadDir(dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	return &Archive{Path: path, Dir: dir, Project: project}, nil
}

// Close removes the scratch directory. The archive is unusable afterwards.
func (a *Archive) Close() error {
	if a.Dir == "" {
		return nil
	}
	err := os.RemoveAll(a.Dir)
	a.Dir = ""
	return err
}

// TopicDir returns the scratch path of one topic's directory.
func (a *Archive) TopicDir(m *model.Markup) string {
	return filepath.Join(a.Dir, m.TopicGUID().String())
}

// Save zips the scratch directory back over the source archive. The zip
// bytes are assembled in memory and written atomically so a failed save
// never truncates the original file.
func (a *Archive) Save() error {
	if err := a.ensureVersionFile(); err != nil {
		return err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := filepath.Walk(a.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(a.Dir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("pack archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pack archive: %w", err)
	}

	if err := atomicfile.WriteFile(a.Path, buf.Bytes(), 0); err != nil {
		return fmt.Errorf("save archive: %w", err)
	}
	return nil
}

// ensureVersionFile writes bcf.version when the archive lacks one, so
// archives created from scratch identify their format version.
func (a *Archive) ensureVersionFile() error {
	path := filepath.Join(a.Dir, VersionFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	const versionXML = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<Version VersionId="2.1">` + "\n" +
		`  <DetailedVersion>2.1</DetailedVersion>` + "\n" +
		`</Version>` + "\n"
	return atomicfile.WriteFile(path, []byte(versionXML), 0)
}

// extract unpacks the zip at src into dir, refusing entries that would
// escape it.
func extract(src, dir string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotAnArchive, src, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		name := filepath.FromSlash(f.Name)
		if strings.Contains(name, "..") {
			return fmt.Errorf("%w: entry %q escapes the archive", ErrNotAnArchive, f.Name)
		}
		target := filepath.Join(dir, name)

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("extract %s: %w", f.Name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return nil
}
