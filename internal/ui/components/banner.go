package components

import (
	"charm.land/lipgloss/v2"

	"github.com/vhoang/geotutor/internal/ui/theme"
)

// ErrorBanner renders an inline dismissible error notice at the given
// width.
func ErrorBanner(msg string, width int) string {
	if msg == "" {
		return ""
	}
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	return lipgloss.NewStyle().
		Width(inner).
		Foreground(theme.Text).
		Background(theme.Error).
		Padding(0, 1).
		Render(msg + "  (esc to dismiss)")
}
