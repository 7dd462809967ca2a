package ui

import "fmt"

// Status symbols prefixed to one-line command results.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

func statusLine(symbol, msg string) string {
	return symbol + " " + msg
}

// Success prefixes msg with the success symbol.
func Success(msg string) string {
	return statusLine(SymbolSuccess, msg)
}

// Successf is Success with formatting.
func Successf(format string, args ...any) string {
	return statusLine(SymbolSuccess, fmt.Sprintf(format, args...))
}

// Error prefixes msg with the error symbol.
func Error(msg string) string {
	return statusLine(SymbolError, msg)
}

// Errorf is Error with formatting.
func Errorf(format string, args ...any) string {
	return statusLine(SymbolError, fmt.Sprintf(format, args...))
}

// Warning prefixes msg with the warning symbol.
func Warning(msg string) string {
	return statusLine(SymbolWarning, msg)
}

// Warningf is Warning with formatting.
func Warningf(format string, args ...any) string {
	return statusLine(SymbolWarning, fmt.Sprintf(format, args...))
}

// Info prefixes msg with the info symbol.
func Info(msg string) string {
	return statusLine(SymbolInfo, msg)
}

// Infof is Info with formatting.
func Infof(format string, args ...any) string {
	return statusLine(SymbolInfo, fmt.Sprintf(format, args...))
}

// Header renders a bold section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// GUID renders a GUID in the accent color.
func GUID(guid string) string {
	return Accent.Render(guid)
}

// Hint renders muted trailing text, like lookup hints and result counts.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count formats a count badge such as "(3 topics)", picking the singular
// form for exactly one.
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("(%d %s)", n, singular)
	}
	return fmt.Sprintf("(%d %s)", n, plural)
}
