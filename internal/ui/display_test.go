package ui

import "testing"

func TestDisplayTextWidth(t *testing.T) {
	d := FixedDisplay(80)
	if !d.TTY {
		t.Fatal("FixedDisplay is not a TTY")
	}
	if got := d.TextWidth(MarkdownRenderMargin); got != 80-MarkdownRenderMargin {
		t.Fatalf("TextWidth = %d, want %d", got, 80-MarkdownRenderMargin)
	}
}
