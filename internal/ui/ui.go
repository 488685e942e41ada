package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

var debugEnabled bool

// SetDebug toggles debug output for the whole process.
func SetDebug(on bool) {
	debugEnabled = on
}

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool {
	return debugEnabled
}

// FormatError returns a styled multi-line error message.
func FormatError(title, detail, suggestion string) string {
	out := errorStyle.Render("Error: "+title) + "\n"
	if detail != "" {
		out += "  " + detail + "\n"
	}
	if suggestion != "" {
		out += "  " + hintStyle.Render("Hint: "+suggestion) + "\n"
	}
	return out
}

// Info prints a plain informational message.
func Info(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Debug prints a dim message when debug output is enabled.
func Debug(format string, args ...any) {
	if !debugEnabled {
		return
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf(format, args...)))
}

// Action prints a styled line for a planned or executed mutation,
// e.g. Action("create", "host 'web01'").
func Action(verb, detail string) {
	fmt.Printf("  %s %s\n", boldStyle.Render(verb), detail)
}

// DryRun prints a styled line for a mutation that would happen.
func DryRun(detail string) {
	fmt.Printf("  %s %s\n", hintStyle.Render("dry-run:"), detail)
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("Warning: " + msg))
}

// Bold renders text in bold.
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Hint renders text in dim italic.
func Hint(s string) string {
	return hintStyle.Render(s)
}

// ValidationOK prints a green check for a valid field.
func ValidationOK(field, detail string) {
	fmt.Printf("  %s %s: %s\n", successStyle.Render("OK "), field, detail)
}

// ValidationErr prints a red error for an invalid field.
func ValidationErr(field, message, suggestion string) {
	fmt.Printf("  %s %s: %s\n", errorStyle.Render("ERR"), field, message)
	if suggestion != "" {
		fmt.Printf("      %s\n", hintStyle.Render("Hint: "+suggestion))
	}
}
