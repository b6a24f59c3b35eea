package workspace

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vhoang/geotutor/internal/tutor"
	"github.com/vhoang/geotutor/internal/ui/theme"
)

const factsPanelWidth = 32

func (s *WorkspaceScreen) View(width, height int) string {
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}

	chatWidth := width - factsPanelWidth - 2
	if chatWidth < 40 {
		chatWidth = width
	}

	transcript := s.renderTranscript(chatWidth, height-4)
	inputLine := s.renderInputLine(chatWidth)
	banner := s.renderBanners(chatWidth)

	left := transcript
	if banner != "" {
		left += "\n" + banner
	}
	left += "\n" + inputLine

	if chatWidth == width {
		// Too narrow for the side panel.
		return left
	}

	right := s.renderFactsPanel(factsPanelWidth, height-2)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderTranscript renders the chat entries, keeping the tail that fits.
func (s *WorkspaceScreen) renderTranscript(width, maxLines int) string {
	bubbleWidth := width - 10
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var blocks []string
	for _, e := range s.orch.Transcript.Messages() {
		switch e.Author {
		case tutor.AuthorUser:
			bubble := theme.UserBubble.Width(bubbleWidth).Render(e.Text)
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
		case tutor.AuthorAssistant:
			bubble := theme.TutorBubble.Width(bubbleWidth).Render(e.Text)
			blocks = append(blocks, bubble)
		}
	}

	if s.orch.Transcript.Busy() {
		blocks = append(blocks, "  "+s.spinner.View("Tutor is thinking..."))
	}

	joined := strings.Join(blocks, "\n")

	// Keep the newest lines on screen.
	lines := strings.Split(joined, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}

func (s *WorkspaceScreen) renderInputLine(width int) string {
	label := "You"
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if s.orch.AwaitingAnswer() {
		label = "Answer"
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	return style.Render(label+" ❯ ") + s.input.View()
}

// renderBanners shows at most one failure banner plus any pending
// loading indicators for the structured actions.
func (s *WorkspaceScreen) renderBanners(width int) string {
	var parts []string

	for _, a := range []struct {
		err     string
		loading bool
		label   string
	}{
		{s.orch.Actions.Hint.Err(), s.orch.Actions.Hint.Loading(), "Thinking of a hint..."},
		{s.orch.Actions.Validation.Err(), s.orch.Actions.Validation.Loading(), "Checking your answer..."},
		{s.orch.Actions.Solution.Err(), s.orch.Actions.Solution.Loading(), "Working out the solution..."},
		{s.orch.Actions.Visualization.Err(), s.orch.Actions.Visualization.Loading(), "Drawing the diagram..."},
		{s.orch.Actions.Facts.Err(), s.orch.Actions.Facts.Loading(), ""},
	} {
		if a.loading && a.label != "" {
			parts = append(parts, "  "+s.spinner.View(a.label))
			continue
		}
		if a.err != "" {
			parts = append(parts, theme.ErrorBanner.Render(a.err+"  (esc to dismiss)"))
		}
	}

	if s.vizSaveErr != "" {
		parts = append(parts, theme.ErrorBanner.Render(s.vizSaveErr+"  (esc to dismiss)"))
	}

	return strings.Join(parts, "\n")
}

// renderFactsPanel renders the known-facts sidebar.
func (s *WorkspaceScreen) renderFactsPanel(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.FactsTitle.Render("Known facts"))
	b.WriteString("\n")

	facts, ok := s.orch.Actions.Facts.Payload()
	switch {
	case s.orch.Actions.Facts.Loading():
		b.WriteString(s.spinner.View("refreshing..."))
	case !ok || len(facts) == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("Nothing established yet."))
	default:
		for _, f := range facts {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("• "))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(f))
			b.WriteString("\n")
		}
	}

	if s.savedVizPath != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Diagram saved:"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.savedVizPath))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(b.String())
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this session?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("The conversation is not saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, quit"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}
