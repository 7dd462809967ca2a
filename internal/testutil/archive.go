// Package testutil provides reusable fixtures for archive and session
// tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestArchive builds a BCF zip fixture file by file.
type TestArchive struct {
	t     *testing.T
	files map[string]string
	Path  string
}

// NewTestArchive creates an archive builder. Call Build to write the zip.
func NewTestArchive(t *testing.T) *TestArchive {
	t.Helper()
	return &TestArchive{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file at a zip-relative path.
func (a *TestArchive) WithFile(path, content string) *TestArchive {
	a.files[path] = content
	return a
}

// WithProject sets the project.bcf content.
func (a *TestArchive) WithProject(xml string) *TestArchive {
	return a.WithFile("project.bcf", xml)
}

// WithMarkup adds a topic directory with the given markup.bcf content.
func (a *TestArchive) WithMarkup(topicGUID, xml string) *TestArchive {
	return a.WithFile(topicGUID+"/markup.bcf", xml)
}

// WithViewpoint adds a .bcfv file into a topic directory.
func (a *TestArchive) WithViewpoint(topicGUID, filename, xml string) *TestArchive {
	return a.WithFile(topicGUID+"/"+filename, xml)
}

// Build writes the zip into a fresh temp dir and returns its path.
func (a *TestArchive) Build() string {
	a.t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for path, content := range a.files {
		w, err := zw.Create(path)
		if err != nil {
			a.t.Fatalf("create zip entry %s: %v", path, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			a.t.Fatalf("write zip entry %s: %v", path, err)
		}
	}
	if err := zw.Close(); err != nil {
		a.t.Fatalf("close zip: %v", err)
	}

	a.Path = filepath.Join(a.t.TempDir(), "fixture.bcf")
	if err := os.WriteFile(a.Path, buf.Bytes(), 0o644); err != nil {
		a.t.Fatalf("write fixture archive: %v", err)
	}
	return a.Path
}

// ProjectXML is a minimal valid project.bcf body.
const ProjectXML = `<?xml version="1.0" encoding="UTF-8"?>
<ProjectExtension>
  <Project ProjectId="c9b3d9a2-1111-2222-3333-444455556666">
    <Name>Office tower</Name>
  </Project>
  <ExtensionSchema></ExtensionSchema>
</ProjectExtension>
`

// MarkupXML renders a small markup.bcf with one comment for the given
// topic GUID and title.
func MarkupXML(topicGUID, title string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<Markup>
  <Topic Guid="` + topicGUID + `" TopicType="Issue" TopicStatus="Open">
    <Title>` + title + `</Title>
    <Date>2026-01-15T09:00:00Z</Date>
    <Author>a@b.com</Author>
  </Topic>
  <Comment Guid="f47ac10b-58cc-4372-a567-0e02b2c3d479">
    <Date>2026-01-16T10:00:00Z</Date>
    <Author>a@b.com</Author>
    <Comment>First look done</Comment>
  </Comment>
</Markup>
`
}
