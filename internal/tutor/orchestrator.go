package tutor

// Phase is the page-level mode of the orchestrator.
type Phase int

const (
	// PhaseIntake: no session yet, collecting a problem statement.
	PhaseIntake Phase = iota
	// PhaseWorkspace: session active, chat and structured actions available.
	PhaseWorkspace
)

// Kind identifies a structured action capability.
type Kind int

const (
	KindChat Kind = iota
	KindFacts
	KindHint
	KindValidation
	KindSolution
	KindVisualization
)

// Followup is a deferred action the caller must run after a successful
// outcome. The orchestrator never calls one action client from another;
// it returns follow-ups and the event loop issues them.
type Followup int

const (
	// FollowupRefreshFacts requests a full facts refresh.
	FollowupRefreshFacts Followup = iota
)

// Outcome is the condition input for follow-up rules.
type Outcome struct {
	Correct     bool
	MovedToNext bool
}

// followupRule declares one post-success effect. Keeping these in a
// table makes the cross-action coupling auditable in one place.
type followupRule struct {
	Kind     Kind
	When     func(Outcome) bool
	Followup Followup
}

var followupRules = []followupRule{
	{Kind: KindValidation, When: func(o Outcome) bool { return o.Correct }, Followup: FollowupRefreshFacts},
	{Kind: KindSolution, When: func(Outcome) bool { return true }, Followup: FollowupRefreshFacts},
}

func followupsFor(kind Kind, out Outcome) []Followup {
	var fws []Followup
	for _, r := range followupRules {
		if r.Kind == kind && r.When(out) {
			fws = append(fws, r.Followup)
		}
	}
	return fws
}

// Orchestrator is the explicit context object for one page session. It
// wires user intent to the right action client, turns typed results
// into transcript narrations, and drives the Intake -> Workspace phase
// switch. Constructed once and threaded through the event handlers; it
// holds no hidden globals and performs no I/O itself.
type Orchestrator struct {
	Session    *Handle
	Transcript *Transcript
	Actions    *Actions

	phase          Phase
	awaitingAnswer bool
	// factsConfirm is set when a correct validation triggered a facts
	// refresh; the confirmation narration is appended when that refresh
	// settles successfully.
	factsConfirm bool
}

// New constructs an orchestrator in the Intake phase.
func New() *Orchestrator {
	handle := NewHandle()
	return &Orchestrator{
		Session:    handle,
		Transcript: NewTranscript(),
		Actions:    NewActions(handle),
	}
}

// Phase returns the current page phase.
func (o *Orchestrator) Phase() Phase { return o.phase }

// AwaitingAnswer reports whether the validation-answer sub-mode is
// active. While it is, the plain chat input is suppressed.
func (o *Orchestrator) AwaitingAnswer() bool { return o.awaitingAnswer }

// EnterAnswerMode switches the workspace into validation-answer entry.
func (o *Orchestrator) EnterAnswerMode() {
	if o.phase == PhaseWorkspace {
		o.awaitingAnswer = true
	}
}

// CancelAnswerMode returns to plain chat without submitting.
func (o *Orchestrator) CancelAnswerMode() { o.awaitingAnswer = false }

// BeginCreate starts session creation. See Handle.BeginCreate.
func (o *Orchestrator) BeginCreate(problem string) error {
	return o.Session.BeginCreate(problem)
}

// CompleteCreate installs the new session, resets all action clients
// (dropping any stale payloads from a replaced session), switches to
// the Workspace phase, and seeds the transcript with the user's problem
// statement and the assistant's opening entry.
func (o *Orchestrator) CompleteCreate(sessionID, problem string) {
	o.Session.CompleteCreate(sessionID)
	o.Actions.Reset()
	// A narrating action of the replaced session may still be in flight;
	// its result will be discarded as stale and never reach the
	// SetBusy(false) in its Apply method.
	o.Transcript.SetBusy(false)
	o.awaitingAnswer = false
	o.factsConfirm = false
	o.phase = PhaseWorkspace
	o.Transcript.AppendUser(problem)
	o.Transcript.AppendAssistant(narrateWelcome())
}

// FailCreate records a creation failure. The phase stays Intake and the
// message is available on the session handle for the inline banner.
func (o *Orchestrator) FailCreate(msg string) {
	o.Session.FailCreate(msg)
}

// BeginChat starts a free-text chat turn. The user entry is appended
// immediately; the reply arrives via ApplyChat. Chat is suppressed
// while the validation-answer sub-mode is active.
func (o *Orchestrator) BeginChat(text string) (Invocation, error) {
	if o.awaitingAnswer {
		return Invocation{}, &PreconditionError{Op: "chat", Reason: "waiting for a validation answer"}
	}
	if isBlank(text) {
		return Invocation{}, &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	inv, err := o.Actions.Chat.Begin()
	if err != nil {
		return Invocation{}, err
	}
	o.Transcript.AppendUser(text)
	o.Transcript.SetBusy(true)
	return inv, nil
}

// ApplyChat settles a chat turn: the assistant reply is narrated, or a
// generic failure notice when the turn failed.
func (o *Orchestrator) ApplyChat(inv Invocation, reply string, err error) {
	if !o.Actions.Chat.Finish(inv, reply, err) {
		return
	}
	o.Transcript.SetBusy(false)
	if err != nil {
		o.Transcript.AppendAssistant(narrateFailure(KindChat))
		return
	}
	o.Transcript.AppendAssistant(reply)
}

// BeginHint starts a hint request. The backend enforces the hint
// budget; the client keeps permitting invocations even after
// max-hints-reached so enforcement stays server-authoritative.
func (o *Orchestrator) BeginHint() (Invocation, error) {
	inv, err := o.Actions.Hint.Begin()
	if err != nil {
		return Invocation{}, err
	}
	o.Transcript.SetBusy(true)
	return inv, nil
}

// ApplyHint narrates a settled hint: the hint text, plus a second
// distinct entry when the budget is exhausted.
func (o *Orchestrator) ApplyHint(inv Invocation, res HintResult, err error) []Followup {
	if !o.Actions.Hint.Finish(inv, res, err) {
		return nil
	}
	o.Transcript.SetBusy(false)
	if err != nil {
		o.Transcript.AppendAssistant(narrateFailure(KindHint))
		return nil
	}
	o.Transcript.AppendAssistant(narrateHint(res))
	if res.MaxHintsReached {
		o.Transcript.AppendAssistant(narrateHintBudget())
	}
	return followupsFor(KindHint, Outcome{})
}

// BeginValidation submits the answer the user typed in answer mode.
// Submitting (or cancelling) leaves the sub-mode. The user's raw answer
// is appended only when the result settles successfully, so the
// transcript gains answer and verdict together, in order.
func (o *Orchestrator) BeginValidation(answer string) (Invocation, error) {
	inv, err := o.Actions.BeginValidation(answer)
	if err != nil {
		return Invocation{}, err
	}
	o.awaitingAnswer = false
	o.Transcript.SetBusy(true)
	return inv, nil
}

// ApplyValidation narrates a settled validation: the user's answer, the
// verdict, and - when the flow advanced - a distinct moved-to-next
// entry. A correct answer yields a facts-refresh follow-up; the
// confirmation narration is appended when that refresh settles.
func (o *Orchestrator) ApplyValidation(inv Invocation, answer string, res ValidationResult, err error) []Followup {
	if !o.Actions.Validation.Finish(inv, res, err) {
		return nil
	}
	o.Transcript.SetBusy(false)
	if err != nil {
		o.Transcript.AppendAssistant(narrateFailure(KindValidation))
		return nil
	}
	o.Transcript.AppendUser(answer)
	o.Transcript.AppendAssistant(narrateVerdict(res))
	if res.MovedToNext {
		o.Transcript.AppendAssistant(narrateMovedToNext())
	}
	fws := followupsFor(KindValidation, Outcome{Correct: res.Correct, MovedToNext: res.MovedToNext})
	for _, fw := range fws {
		if fw == FollowupRefreshFacts {
			o.factsConfirm = true
		}
	}
	return fws
}

// BeginSolution starts a solution reveal.
func (o *Orchestrator) BeginSolution() (Invocation, error) {
	inv, err := o.Actions.Solution.Begin()
	if err != nil {
		return Invocation{}, err
	}
	o.Transcript.SetBusy(true)
	return inv, nil
}

// ApplySolution narrates a settled solution reveal.
func (o *Orchestrator) ApplySolution(inv Invocation, res SolutionResult, err error) []Followup {
	if !o.Actions.Solution.Finish(inv, res, err) {
		return nil
	}
	o.Transcript.SetBusy(false)
	if err != nil {
		o.Transcript.AppendAssistant(narrateFailure(KindSolution))
		return nil
	}
	o.Transcript.AppendAssistant(narrateSolution(res))
	if res.MovedToNext {
		o.Transcript.AppendAssistant(narrateMovedToNext())
	}
	return followupsFor(KindSolution, Outcome{MovedToNext: res.MovedToNext})
}

// BeginFacts starts a facts refresh. Each call is independent; the
// stored list is wholly replaced on success, never merged.
func (o *Orchestrator) BeginFacts() (Invocation, error) {
	return o.Actions.Facts.Begin()
}

// ApplyFacts settles a facts refresh. Facts update their own display
// state; the only narration is the confirmation owed after a correct
// validation triggered the refresh.
func (o *Orchestrator) ApplyFacts(inv Invocation, facts []string, err error) {
	if !o.Actions.Facts.Finish(inv, facts, err) {
		return
	}
	if err != nil {
		o.factsConfirm = false
		return
	}
	if o.factsConfirm {
		o.factsConfirm = false
		o.Transcript.AppendAssistant(narrateFactsRefreshed())
	}
}

// BeginVisualization starts an illustration request.
func (o *Orchestrator) BeginVisualization() (Invocation, error) {
	return o.Actions.Visualization.Begin()
}

// ApplyVisualization settles an illustration request. The payload is
// opaque; display state only, no transcript narration.
func (o *Orchestrator) ApplyVisualization(inv Invocation, res Visualization, err error) {
	o.Actions.Visualization.Finish(inv, res, err)
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
