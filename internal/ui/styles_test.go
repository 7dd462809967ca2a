package ui

import "testing"

func TestNormalizeAccentColor(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"39", "39", true},
		{"255", "255", true},
		{"#7D56F4", "#7D56F4", true},
		{" #7D56F4 ", "#7D56F4", true},
		{"", "", false},
		{"300", "", false},
		{"#12345", "", false},
		{"purple", "", false},
	}

	for _, tt := range tests {
		got, ok := normalizeAccentColor(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("normalizeAccentColor(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestConfigureTheme(t *testing.T) {
	origAccent := accentColor
	origTheme := codeTheme
	t.Cleanup(func() {
		accentColor = origAccent
		codeTheme = origTheme
	})

	ConfigureTheme("#7D56F4", "dracula")
	got, ok := AccentColor()
	if !ok || got != "#7D56F4" {
		t.Fatalf("AccentColor() = (%q, %v)", got, ok)
	}
	theme, ok := CodeTheme()
	if !ok || theme != "dracula" {
		t.Fatalf("CodeTheme() = (%q, %v)", theme, ok)
	}

	// Invalid accent keeps the previous color.
	ConfigureTheme("not-a-color", "")
	got, ok = AccentColor()
	if !ok || got != "#7D56F4" {
		t.Fatalf("AccentColor() after invalid input = (%q, %v)", got, ok)
	}
}

func TestTableAlignment(t *testing.T) {
	table := NewTable(2)
	table.AddRow("short", "x")
	table.AddRow("a much longer cell", "y")

	out := table.String()
	want := "short               x\na much longer cell  y\n"
	if out != want {
		t.Fatalf("table output:\n%q\nwant:\n%q", out, want)
	}
}
