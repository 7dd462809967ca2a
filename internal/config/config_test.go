package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigArchivePath(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		cfg := &Config{DefaultFile: "/projects/tower.bcf"}

		path, err := cfg.ArchivePath("/tmp/other.bcf")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/tmp/other.bcf" {
			t.Errorf("expected '/tmp/other.bcf', got %q", path)
		}
	})

	t.Run("falls back to default file", func(t *testing.T) {
		cfg := &Config{DefaultFile: "/projects/tower.bcf"}

		path, err := cfg.ArchivePath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/projects/tower.bcf" {
			t.Errorf("expected '/projects/tower.bcf', got %q", path)
		}
	})

	t.Run("no archive configured", func(t *testing.T) {
		cfg := &Config{}

		if _, err := cfg.ArchivePath(""); err == nil {
			t.Error("expected error for unset archive")
		}
	})
}

func TestConfigResolveAuthor(t *testing.T) {
	cfg := &Config{Author: "you@example.com"}

	author, err := cfg.ResolveAuthor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if author != "you@example.com" {
		t.Errorf("expected 'you@example.com', got %q", author)
	}

	author, err = cfg.ResolveAuthor("override@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if author != "override@example.com" {
		t.Errorf("expected override, got %q", author)
	}

	if _, err := (&Config{}).ResolveAuthor(""); err == nil {
		t.Error("expected error for unset author")
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `default_file = "/projects/tower.bcf"
author = "you@example.com"

[ui]
accent = "#7D56F4"
code_theme = "dracula"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultFile != "/projects/tower.bcf" {
		t.Errorf("DefaultFile = %q", cfg.DefaultFile)
	}
	if cfg.Author != "you@example.com" {
		t.Errorf("Author = %q", cfg.Author)
	}
	if cfg.UI.Accent != "#7D56F4" {
		t.Errorf("UI.Accent = %q", cfg.UI.Accent)
	}
	if cfg.UI.CodeTheme != "dracula" {
		t.Errorf("UI.CodeTheme = %q", cfg.UI.CodeTheme)
	}
}

func TestLoadFromInvalidToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("default_file = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}
