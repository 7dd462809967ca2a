package slugs

import "testing"

func TestFileSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Floor Plan.PDF", "floor-plan.pdf"},
		{"model v2.ifc", "model-v2.ifc"},
		{"README", "readme"},
		{"Schnittplan Nord.png", "schnittplan-nord.png"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FileSlug(tt.in); got != tt.want {
				t.Fatalf("FileSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNumberedSlug(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"plan.pdf", 1, "plan(1).pdf"},
		{"plan.pdf", 12, "plan(12).pdf"},
		{"readme", 2, "readme(2)"},
	}

	for _, tt := range tests {
		if got := NumberedSlug(tt.in, tt.n); got != tt.want {
			t.Fatalf("NumberedSlug(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
