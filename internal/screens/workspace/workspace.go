package workspace

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/vhoang/geotutor/internal/api"
	"github.com/vhoang/geotutor/internal/screen"
	"github.com/vhoang/geotutor/internal/tutor"
	"github.com/vhoang/geotutor/internal/ui/components"
	"github.com/vhoang/geotutor/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

// WorkspaceScreen is the active tutoring page: chat transcript, known
// facts panel, and the structured actions (hint, validate, solution,
// diagram).
type WorkspaceScreen struct {
	orch   *tutor.Orchestrator
	client api.Client

	input       components.TextInput
	spinner     components.Spinner
	quitConfirm bool

	// savedVizPath is where the last diagram was written, shown in the
	// facts panel.
	savedVizPath string
	vizSaveErr   string
}

var _ screen.Screen = (*WorkspaceScreen)(nil)
var _ screen.KeyHintProvider = (*WorkspaceScreen)(nil)

// New creates a WorkspaceScreen over an orchestrator that already holds
// an active session.
func New(orch *tutor.Orchestrator, client api.Client) *WorkspaceScreen {
	return &WorkspaceScreen{
		orch:   orch,
		client: client,
		input:  components.NewTextInput("Ask the tutor anything...", 0),
	}
}

func (s *WorkspaceScreen) Title() string {
	return "Workspace"
}

func (s *WorkspaceScreen) Init() tea.Cmd {
	// Load the facts panel for the fresh session right away.
	return tea.Batch(s.input.Init(), s.beginFacts(), spinnerTick())
}

func (s *WorkspaceScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.orch.AwaitingAnswer() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit answer"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+T", Description: "Hint"},
		{Key: "Ctrl+R", Description: "Answer"},
		{Key: "Ctrl+O", Description: "Solution"},
		{Key: "Ctrl+F", Description: "Facts"},
		{Key: "Ctrl+G", Description: "Diagram"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *WorkspaceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		s.orch.ApplyChat(msg.Inv, msg.Reply, msg.Err)
		return s, nil

	case hintMsg:
		return s, s.runFollowups(s.orch.ApplyHint(msg.Inv, msg.Res, msg.Err))

	case validationMsg:
		return s, s.runFollowups(s.orch.ApplyValidation(msg.Inv, msg.Answer, msg.Res, msg.Err))

	case solutionMsg:
		return s, s.runFollowups(s.orch.ApplySolution(msg.Inv, msg.Res, msg.Err))

	case factsMsg:
		s.orch.ApplyFacts(msg.Inv, msg.Facts, msg.Err)
		return s, nil

	case vizMsg:
		s.orch.ApplyVisualization(msg.Inv, msg.Res, msg.Err)
		if msg.Err != nil {
			return s, nil
		}
		return s, s.saveViz(msg.Res)

	case vizSavedMsg:
		if msg.Err != nil {
			s.vizSaveErr = msg.Err.Error()
			return s, nil
		}
		s.vizSaveErr = ""
		s.savedVizPath = msg.Path
		return s, nil

	case spinnerTickMsg:
		s.spinner.Advance()
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *WorkspaceScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s, tea.Quit
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s.handleEsc()
	case "enter":
		return s.submitInput()
	case "ctrl+t":
		return s.beginAction(s.orch.BeginHint, s.hintCmd)
	case "ctrl+r":
		s.orch.EnterAnswerMode()
		s.input.SetPlaceholder("Your answer...")
		return s, nil
	case "ctrl+o":
		return s.beginAction(s.orch.BeginSolution, s.solutionCmd)
	case "ctrl+f":
		return s, s.beginFacts()
	case "ctrl+g":
		return s.beginAction(s.orch.BeginVisualization, s.vizCmd)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// handleEsc cancels the answer sub-mode, then dismisses error banners,
// then asks to quit.
func (s *WorkspaceScreen) handleEsc() (screen.Screen, tea.Cmd) {
	if s.orch.AwaitingAnswer() {
		s.orch.CancelAnswerMode()
		s.input.SetPlaceholder("Ask the tutor anything...")
		s.input.Clear()
		return s, nil
	}
	if s.dismissErrors() {
		return s, nil
	}
	s.quitConfirm = true
	return s, nil
}

// dismissErrors clears any stored action failure banners. Returns true
// if there was something to dismiss.
func (s *WorkspaceScreen) dismissErrors() bool {
	dismissed := false
	for _, a := range []interface {
		Err() string
		ClearError()
	}{
		s.orch.Actions.Chat, s.orch.Actions.Facts, s.orch.Actions.Hint,
		s.orch.Actions.Validation, s.orch.Actions.Solution, s.orch.Actions.Visualization,
	} {
		if a.Err() != "" {
			a.ClearError()
			dismissed = true
		}
	}
	if s.vizSaveErr != "" {
		s.vizSaveErr = ""
		dismissed = true
	}
	return dismissed
}

// submitInput routes enter to either answer validation or plain chat.
func (s *WorkspaceScreen) submitInput() (screen.Screen, tea.Cmd) {
	text := s.input.Value()

	if s.orch.AwaitingAnswer() {
		inv, err := s.orch.BeginValidation(text)
		if err != nil {
			return s, nil
		}
		s.input.Clear()
		s.input.SetPlaceholder("Ask the tutor anything...")
		return s, s.validationCmd(inv, text)
	}

	inv, err := s.orch.BeginChat(text)
	if err != nil {
		return s, nil
	}
	s.input.Clear()
	return s, s.chatCmd(inv, text)
}

// beginAction runs a Begin and, on success, the matching request
// command. Precondition failures are silent; the action either has no
// session (impossible here) or is already in flight.
func (s *WorkspaceScreen) beginAction(begin func() (tutor.Invocation, error), cmd func(tutor.Invocation) tea.Cmd) (screen.Screen, tea.Cmd) {
	inv, err := begin()
	if err != nil {
		return s, nil
	}
	return s, cmd(inv)
}

// runFollowups issues the deferred actions a settled result demands.
func (s *WorkspaceScreen) runFollowups(fws []tutor.Followup) tea.Cmd {
	var cmds []tea.Cmd
	for _, fw := range fws {
		if fw == tutor.FollowupRefreshFacts {
			cmds = append(cmds, s.beginFacts())
		}
	}
	return tea.Batch(cmds...)
}

func (s *WorkspaceScreen) beginFacts() tea.Cmd {
	inv, err := s.orch.BeginFacts()
	if err != nil {
		return nil
	}
	return s.factsCmd(inv)
}

func (s *WorkspaceScreen) chatCmd(inv tutor.Invocation, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := s.client.SendMessage(context.Background(), inv.SessionID, text)
		return chatReplyMsg{Inv: inv, Reply: reply, Err: err}
	}
}

func (s *WorkspaceScreen) hintCmd(inv tutor.Invocation) tea.Cmd {
	return func() tea.Msg {
		resp, err := s.client.Hint(context.Background(), inv.SessionID)
		if err != nil {
			return hintMsg{Inv: inv, Err: err}
		}
		return hintMsg{Inv: inv, Res: tutor.HintResult{
			Text:            resp.HintText,
			MaxHintsReached: resp.MaxHintsReached,
		}}
	}
}

func (s *WorkspaceScreen) validationCmd(inv tutor.Invocation, answer string) tea.Cmd {
	return func() tea.Msg {
		resp, err := s.client.Validate(context.Background(), inv.SessionID, answer)
		if err != nil {
			return validationMsg{Inv: inv, Answer: answer, Err: err}
		}
		return validationMsg{Inv: inv, Answer: answer, Res: tutor.ValidationResult{
			Correct:     resp.IsCorrect,
			Feedback:    resp.Feedback,
			MovedToNext: resp.MovedToNext,
		}}
	}
}

func (s *WorkspaceScreen) solutionCmd(inv tutor.Invocation) tea.Cmd {
	return func() tea.Msg {
		resp, err := s.client.Solution(context.Background(), inv.SessionID)
		if err != nil {
			return solutionMsg{Inv: inv, Err: err}
		}
		return solutionMsg{Inv: inv, Res: tutor.SolutionResult{
			Text:        resp.SolutionText,
			MovedToNext: resp.MovedToNext,
		}}
	}
}

func (s *WorkspaceScreen) factsCmd(inv tutor.Invocation) tea.Cmd {
	return func() tea.Msg {
		facts, err := s.client.Facts(context.Background(), inv.SessionID)
		return factsMsg{Inv: inv, Facts: facts, Err: err}
	}
}

func (s *WorkspaceScreen) vizCmd(inv tutor.Invocation) tea.Cmd {
	return func() tea.Msg {
		resp, err := s.client.Illustration(context.Background(), inv.SessionID)
		if err != nil {
			return vizMsg{Inv: inv, Err: err}
		}
		return vizMsg{Inv: inv, Res: tutor.Visualization{
			ImageB64: resp.B64StringViz,
			Caption:  resp.Message,
		}}
	}
}

// saveViz decodes the diagram and writes it next to the user's temp
// files. The terminal can't display a PNG; the path is shown instead.
func (s *WorkspaceScreen) saveViz(res tutor.Visualization) tea.Cmd {
	sessionID := s.orch.Session.ID()
	return func() tea.Msg {
		raw, err := base64.StdEncoding.DecodeString(res.ImageB64)
		if err != nil {
			return vizSavedMsg{Err: fmt.Errorf("decode diagram: %w", err)}
		}
		path := filepath.Join(os.TempDir(),
			fmt.Sprintf("geotutor-diagram-%s-%d.png", sessionID, time.Now().Unix()))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return vizSavedMsg{Err: fmt.Errorf("save diagram: %w", err)}
		}
		return vizSavedMsg{Path: path}
	}
}

// spinnerTick returns the spinner animation tick command.
func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
