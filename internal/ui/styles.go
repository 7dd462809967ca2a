// Package ui renders bcf's terminal output: styles, status lines, simple
// tables and markdown.
package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple, overridable from config): GUIDs, titles, highlights
// - Muted (gray): secondary info, dates
// - No colored success/error/warning - unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for GUIDs, archive paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, dates
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)
)

var (
	accentColor string
	codeTheme   string
)

var (
	ansiColorRe = regexp.MustCompile(`^(\d{1,3})$`)
	hexColorRe  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// ConfigureTheme applies the user's accent color and markdown code theme.
// Invalid accent values are ignored and the default palette stays active.
func ConfigureTheme(accent, theme string) {
	codeTheme = strings.TrimSpace(theme)

	color, ok := normalizeAccentColor(accent)
	if !ok {
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// CodeTheme returns the configured markdown code theme, if any.
func CodeTheme() (string, bool) {
	if codeTheme == "" {
		return "", false
	}
	return codeTheme, true
}

// normalizeAccentColor accepts ANSI color codes ("0" to "255") and hex
// colors ("#RRGGBB").
func normalizeAccentColor(accent string) (string, bool) {
	accent = strings.TrimSpace(accent)
	if accent == "" {
		return "", false
	}
	if m := ansiColorRe.FindStringSubmatch(accent); m != nil {
		if len(m[1]) <= 3 && atoiSafe(m[1]) <= 255 {
			return m[1], true
		}
		return "", false
	}
	if hexColorRe.MatchString(accent) {
		return accent, true
	}
	return "", false
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
