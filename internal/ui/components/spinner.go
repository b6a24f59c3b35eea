package components

import (
	"charm.land/lipgloss/v2"

	"github.com/vhoang/geotutor/internal/ui/theme"
)

// spinnerFrames are the braille frames cycled while a request is in
// flight.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a frame-stepped loading indicator. It holds no timer of
// its own; the owning screen advances it on its tick message.
type Spinner struct {
	frame int
}

// Advance steps to the next frame.
func (s *Spinner) Advance() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// View renders the current frame with an optional label.
func (s Spinner) View(label string) string {
	out := lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame])
	if label != "" {
		out += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	}
	return out
}
