package workspace

import (
	"context"
	"os"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/vhoang/geotutor/internal/api"
	"github.com/vhoang/geotutor/internal/screen"
	"github.com/vhoang/geotutor/internal/tutor"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testWorkspace() (*WorkspaceScreen, *api.Mock) {
	orch := tutor.New()
	_ = orch.BeginCreate("Cho tam giác ABC vuông tại A, AB = 3cm, AC = 4cm.")
	orch.CompleteCreate("sess-1", "Cho tam giác ABC vuông tại A, AB = 3cm, AC = 4cm.")

	mock := &api.Mock{}
	return New(orch, mock), mock
}

func TestWorkspace_Title(t *testing.T) {
	s, _ := testWorkspace()
	if s.Title() != "Workspace" {
		t.Errorf("Title = %q, want %q", s.Title(), "Workspace")
	}
}

func TestWorkspace_ChatRoundTrip(t *testing.T) {
	s, mock := testWorkspace()
	mock.SendMessageFunc = func(_ context.Context, sessionID, message string) (string, error) {
		if sessionID != "sess-1" {
			t.Errorf("sessionID = %q", sessionID)
		}
		return "BC là cạnh huyền.", nil
	}

	s.input.SetValue("Cạnh nào là cạnh huyền?")

	var scr screen.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a request command after enter")
	}

	ss := scr.(*WorkspaceScreen)
	if !ss.orch.Transcript.Busy() {
		t.Error("transcript should be busy while the reply is pending")
	}

	msg := cmd()
	reply, ok := msg.(chatReplyMsg)
	if !ok {
		t.Fatalf("expected chatReplyMsg, got %T", msg)
	}

	scr, _ = ss.Update(reply)
	ss = scr.(*WorkspaceScreen)

	entries := ss.orch.Transcript.Messages()
	last := entries[len(entries)-1]
	if last.Author != tutor.AuthorAssistant || last.Text != "BC là cạnh huyền." {
		t.Errorf("last entry = %+v", last)
	}
	if ss.orch.Transcript.Busy() {
		t.Error("busy flag should clear once the reply lands")
	}
}

func TestWorkspace_EmptyChatIgnored(t *testing.T) {
	s, _ := testWorkspace()
	before := s.orch.Transcript.Len()

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("empty input should not issue a request")
	}
	if s.orch.Transcript.Len() != before {
		t.Error("empty input should not touch the transcript")
	}
}

func TestWorkspace_HintKey(t *testing.T) {
	s, mock := testWorkspace()
	mock.HintFunc = func(_ context.Context, _ string) (*api.HintResponse, error) {
		return &api.HintResponse{Success: true, HintText: "Dùng định lý Pythagore.", HintLevel: 1}, nil
	}

	var scr screen.Screen = s
	scr, cmd := scr.Update(ctrlKey('t'))
	if cmd == nil {
		t.Fatal("expected a hint command")
	}

	msg := cmd()
	hm, ok := msg.(hintMsg)
	if !ok {
		t.Fatalf("expected hintMsg, got %T", msg)
	}

	ss := scr.(*WorkspaceScreen)
	scr, _ = ss.Update(hm)
	ss = scr.(*WorkspaceScreen)

	entries := ss.orch.Transcript.Messages()
	last := entries[len(entries)-1]
	if !strings.Contains(last.Text, "Dùng định lý Pythagore.") {
		t.Errorf("hint not narrated, last entry: %q", last.Text)
	}
}

func TestWorkspace_HintWhileInFlight(t *testing.T) {
	s, _ := testWorkspace()

	var scr screen.Screen = s
	scr, cmd := scr.Update(ctrlKey('t'))
	if cmd == nil {
		t.Fatal("expected first hint command")
	}

	// Second press while the first is outstanding is ignored.
	_, cmd2 := scr.Update(ctrlKey('t'))
	if cmd2 != nil {
		t.Error("expected second hint press to be a no-op")
	}
}

func TestWorkspace_AnswerMode(t *testing.T) {
	s, mock := testWorkspace()
	mock.ValidateFunc = func(_ context.Context, _, userInput string) (*api.ValidationResponse, error) {
		if userInput != "BC = 5cm" {
			t.Errorf("userInput = %q", userInput)
		}
		return &api.ValidationResponse{Success: true, IsCorrect: true, Feedback: "Chính xác!", MovedToNext: true}, nil
	}
	mock.StatusFunc = func(_ context.Context, _ string) (*api.SessionStatus, error) {
		return &api.SessionStatus{Success: true, KnownFacts: []string{"BC = 5cm"}}, nil
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(ctrlKey('r'))
	ss := scr.(*WorkspaceScreen)
	if !ss.orch.AwaitingAnswer() {
		t.Fatal("expected answer mode after ctrl+r")
	}

	ss.input.SetValue("BC = 5cm")
	scr, cmd := ss.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a validation command")
	}
	ss = scr.(*WorkspaceScreen)
	if ss.orch.AwaitingAnswer() {
		t.Error("submitting should leave answer mode")
	}

	msg := cmd()
	vm, ok := msg.(validationMsg)
	if !ok {
		t.Fatalf("expected validationMsg, got %T", msg)
	}

	scr, followup := ss.Update(vm)
	ss = scr.(*WorkspaceScreen)
	if followup == nil {
		t.Fatal("correct answer should trigger a facts refresh")
	}

	entries := ss.orch.Transcript.Messages()
	var sawAnswer, sawVerdict, sawMoved bool
	for _, e := range entries {
		if e.Author == tutor.AuthorUser && e.Text == "BC = 5cm" {
			sawAnswer = true
		}
		if strings.Contains(e.Text, "Chính xác!") {
			sawVerdict = true
		}
		if strings.Contains(e.Text, "Moving on") {
			sawMoved = true
		}
	}
	if !sawAnswer || !sawVerdict || !sawMoved {
		t.Errorf("transcript missing entries: answer=%v verdict=%v moved=%v", sawAnswer, sawVerdict, sawMoved)
	}
}

func TestWorkspace_AnswerModeCancel(t *testing.T) {
	s, _ := testWorkspace()

	var scr screen.Screen = s
	scr, _ = scr.Update(ctrlKey('r'))
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*WorkspaceScreen)

	if ss.orch.AwaitingAnswer() {
		t.Error("esc should cancel answer mode")
	}
	if ss.quitConfirm {
		t.Error("cancelling answer mode must not open the quit dialog")
	}
}

func TestWorkspace_QuitConfirm(t *testing.T) {
	s, _ := testWorkspace()

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*WorkspaceScreen)
	if !ss.quitConfirm {
		t.Fatal("expected quit confirmation dialog")
	}

	scr, _ = ss.Update(keyPress('n'))
	ss = scr.(*WorkspaceScreen)
	if ss.quitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}

	scr, _ = ss.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected quit command after confirmation")
	}
}

func TestWorkspace_EscDismissesErrorFirst(t *testing.T) {
	s, _ := testWorkspace()

	// Settle a failed hint so a banner is showing.
	inv, err := s.orch.BeginHint()
	if err != nil {
		t.Fatalf("BeginHint: %v", err)
	}
	s.orch.ApplyHint(inv, tutor.HintResult{}, &api.Error{Op: "hint", Status: 500, Message: "boom"})

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*WorkspaceScreen)

	if ss.quitConfirm {
		t.Error("first esc should dismiss the banner, not open quit dialog")
	}
	if ss.orch.Actions.Hint.Err() != "" {
		t.Error("expected hint error to be cleared")
	}
}

func TestWorkspace_FactsPanel(t *testing.T) {
	s, _ := testWorkspace()

	inv, err := s.orch.BeginFacts()
	if err != nil {
		t.Fatalf("BeginFacts: %v", err)
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(factsMsg{Inv: inv, Facts: []string{"AB = 3cm", "AC = 4cm"}})
	ss := scr.(*WorkspaceScreen)

	view := ss.View(100, 30)
	if !strings.Contains(view, "AB = 3cm") {
		t.Error("facts panel should list the known facts")
	}
}

func TestWorkspace_DiagramSaved(t *testing.T) {
	s, _ := testWorkspace()

	inv, err := s.orch.BeginVisualization()
	if err != nil {
		t.Fatalf("BeginVisualization: %v", err)
	}

	// Minimal valid base64 payload.
	viz := tutor.Visualization{ImageB64: "iVBORw0KGgo=", Caption: "Tam giác ABC"}

	var scr screen.Screen = s
	scr, cmd := scr.Update(vizMsg{Inv: inv, Res: viz})
	if cmd == nil {
		t.Fatal("expected a save command after the diagram settles")
	}

	msg := cmd()
	saved, ok := msg.(vizSavedMsg)
	if !ok {
		t.Fatalf("expected vizSavedMsg, got %T", msg)
	}
	if saved.Err != nil {
		t.Fatalf("save: %v", saved.Err)
	}
	defer os.Remove(saved.Path)

	ss := scr.(*WorkspaceScreen)
	scr, _ = ss.Update(saved)
	ss = scr.(*WorkspaceScreen)

	if ss.savedVizPath != saved.Path {
		t.Errorf("savedVizPath = %q, want %q", ss.savedVizPath, saved.Path)
	}
	if _, err := os.Stat(saved.Path); err != nil {
		t.Errorf("diagram file missing: %v", err)
	}
}

func TestWorkspace_KeyHints(t *testing.T) {
	s, _ := testWorkspace()

	hints := s.KeyHints()
	if len(hints) == 0 {
		t.Fatal("expected non-empty key hints")
	}

	// Every live chord is discoverable from the footer.
	keys := make(map[string]bool, len(hints))
	for _, h := range hints {
		keys[h.Key] = true
	}
	for _, want := range []string{"Ctrl+T", "Ctrl+R", "Ctrl+O", "Ctrl+F", "Ctrl+G"} {
		if !keys[want] {
			t.Errorf("footer missing hint for %s", want)
		}
	}

	s.orch.EnterAnswerMode()
	answerHints := s.KeyHints()
	if len(answerHints) == len(hints) {
		t.Error("answer mode should change the key hints")
	}
}
