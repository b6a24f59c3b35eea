package intake

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vhoang/geotutor/internal/api"
	"github.com/vhoang/geotutor/internal/router"
	"github.com/vhoang/geotutor/internal/screen"
	"github.com/vhoang/geotutor/internal/store"
	"github.com/vhoang/geotutor/internal/tutor"
	"github.com/vhoang/geotutor/internal/ui/components"
	"github.com/vhoang/geotutor/internal/ui/layout"
	"github.com/vhoang/geotutor/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

// sessionCreatedMsg is sent when session creation settles.
type sessionCreatedMsg struct {
	SessionID string
	Problem   string
	Total     int
	Err       error
}

// spinnerTickMsg animates the creation spinner.
type spinnerTickMsg time.Time

// IntakeScreen collects a geometry problem statement and creates the
// tutoring session. On success it replaces itself with the workspace.
type IntakeScreen struct {
	orch             *tutor.Orchestrator
	client           api.Client
	activity         store.ActivityRepo // may be nil
	workspaceFactory func() screen.Screen

	input   components.TextArea
	spinner components.Spinner

	// errMsg holds local validation failures; backend failures live on
	// the session handle.
	errMsg string
}

var _ screen.Screen = (*IntakeScreen)(nil)
var _ screen.KeyHintProvider = (*IntakeScreen)(nil)

// New creates an IntakeScreen. workspaceFactory produces the screen to
// switch to once a session exists; activity may be nil when local
// history is disabled.
func New(orch *tutor.Orchestrator, client api.Client, activity store.ActivityRepo, workspaceFactory func() screen.Screen) *IntakeScreen {
	return &IntakeScreen{
		orch:             orch,
		client:           client,
		activity:         activity,
		workspaceFactory: workspaceFactory,
		input:            components.NewTextArea("Paste or type your geometry problem...", 70, 8),
	}
}

// SetProblem preloads the problem statement, used by --file.
func (s *IntakeScreen) SetProblem(text string) {
	s.input.SetValue(text)
}

func (s *IntakeScreen) Title() string {
	return "New Problem"
}

func (s *IntakeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *IntakeScreen) KeyHints() []layout.KeyHint {
	if s.orch.Session.Status() == tutor.StatusCreating {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Start session"},
		{Key: "Esc", Description: "Dismiss error"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *IntakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionCreatedMsg:
		return s.handleCreated(msg)

	case spinnerTickMsg:
		if s.orch.Session.Status() != tutor.StatusCreating {
			return s, nil
		}
		s.spinner.Advance()
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *IntakeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	// While a create is in flight the form is inert.
	if s.orch.Session.Status() == tutor.StatusCreating {
		return s, nil
	}

	switch msg.String() {
	case "ctrl+s":
		return s.submit()
	case "esc":
		s.errMsg = ""
		s.orch.Session.ClearError()
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit starts session creation for the entered problem.
func (s *IntakeScreen) submit() (screen.Screen, tea.Cmd) {
	problem := s.input.Value()
	if err := s.orch.BeginCreate(problem); err != nil {
		var verr *tutor.ValidationError
		if errors.As(err, &verr) {
			s.errMsg = tutor.FailureMessage(err)
		}
		return s, nil
	}
	s.errMsg = ""
	return s, tea.Batch(s.createSession(problem), spinnerTick())
}

// createSession issues the backend call off the event loop.
func (s *IntakeScreen) createSession(problem string) tea.Cmd {
	return func() tea.Msg {
		resp, err := s.client.CreateSession(context.Background(), strings.TrimSpace(problem))
		if err != nil {
			return sessionCreatedMsg{Problem: problem, Err: err}
		}
		return sessionCreatedMsg{
			SessionID: resp.SessionID,
			Problem:   strings.TrimSpace(problem),
			Total:     resp.TotalQuestions,
		}
	}
}

func (s *IntakeScreen) handleCreated(msg sessionCreatedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.orch.FailCreate(tutor.FailureMessage(msg.Err))
		return s, nil
	}

	s.orch.CompleteCreate(msg.SessionID, msg.Problem)

	if s.activity != nil {
		_ = s.activity.RecordSession(context.Background(), store.SessionRecord{
			SessionID: msg.SessionID,
			Problem:   msg.Problem,
			CreatedAt: time.Now(),
		})
	}

	ws := s.workspaceFactory()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: ws}
	}
}

func (s *IntakeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("What are we working on today?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Enter a geometry problem and I'll walk you through it."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n\n")

	if s.orch.Session.Status() == tutor.StatusCreating {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			s.spinner.View("Setting up your session...")))
		b.WriteString("\n")
	}

	banner := s.errMsg
	if banner == "" {
		banner = s.orch.Session.Err()
	}
	if banner != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.ErrorBanner(banner, width)))
		b.WriteString("\n")
	}

	return b.String()
}

// spinnerTick returns the spinner animation tick command.
func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
