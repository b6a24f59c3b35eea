package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vhoang/geotutor/internal/api"
	"github.com/vhoang/geotutor/internal/logging"
	"github.com/vhoang/geotutor/internal/router"
	"github.com/vhoang/geotutor/internal/screen"
	"github.com/vhoang/geotutor/internal/screens/intake"
	"github.com/vhoang/geotutor/internal/screens/workspace"
	"github.com/vhoang/geotutor/internal/store"
	"github.com/vhoang/geotutor/internal/tutor"
	"github.com/vhoang/geotutor/internal/ui/layout"
)

// Options carries the wired dependencies for the TUI.
type Options struct {
	Client   api.Client
	Activity store.ActivityRepo // may be nil
	Logger   *logging.Logger

	// Problem preloads the intake form, used by --file.
	Problem string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	orch   *tutor.Orchestrator
	log    *logging.Logger
	width  int
	height int
}

// newAppModel creates an AppModel starting on the intake screen.
func newAppModel(opts Options) AppModel {
	orch := tutor.New()

	intakeScreen := intake.New(orch, opts.Client, opts.Activity, func() screen.Screen {
		return workspace.New(orch, opts.Client)
	})
	if opts.Problem != "" {
		intakeScreen.SetProblem(opts.Problem)
	}

	return AppModel{
		router: router.New(intakeScreen),
		orch:   orch,
		log:    opts.Logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if m.orch.Session.Ready() {
		status = "session " + m.orch.Session.Status().String()
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	opts.Logger.Info().Msg("starting tutor UI")

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
