package tutor

import "strings"

// HintResult is a successful hint outcome.
type HintResult struct {
	Text            string
	MaxHintsReached bool
}

// ValidationResult is a successful answer-validation outcome.
type ValidationResult struct {
	Correct     bool
	Feedback    string
	MovedToNext bool
}

// SolutionResult is a successful solution reveal.
type SolutionResult struct {
	Text        string
	MovedToNext bool
}

// Visualization is an opaque image payload. The image bytes are
// base64-encoded and never decoded or inspected by this package.
type Visualization struct {
	ImageB64 string
	Caption  string
}

// Actions bundles the per-capability action clients. Each owns its
// result/loading/error state exclusively; none calls another.
type Actions struct {
	Chat          *Action[string]
	Facts         *Action[[]string]
	Hint          *Action[HintResult]
	Validation    *Action[ValidationResult]
	Solution      *Action[SolutionResult]
	Visualization *Action[Visualization]
}

// NewActions creates the action clients bound to the session handle.
func NewActions(handle *Handle) *Actions {
	return &Actions{
		Chat:          NewAction[string]("chat", handle),
		Facts:         NewAction[[]string]("facts", handle),
		Hint:          NewAction[HintResult]("hint", handle),
		Validation:    NewAction[ValidationResult]("validate", handle),
		Solution:      NewAction[SolutionResult]("solution", handle),
		Visualization: NewAction[Visualization]("visualization", handle),
	}
}

// BeginValidation is Begin for the validation client plus the
// answer-text check: an empty answer is a *ValidationError before any
// precondition or network work happens.
func (a *Actions) BeginValidation(answer string) (Invocation, error) {
	if strings.TrimSpace(answer) == "" {
		return Invocation{}, &ValidationError{Field: "answer", Reason: "must not be empty"}
	}
	return a.Validation.Begin()
}

// Reset clears every client. Called on session replacement; in
// particular it drops a stale visualization payload from the previous
// session.
func (a *Actions) Reset() {
	a.Chat.Reset()
	a.Facts.Reset()
	a.Hint.Reset()
	a.Validation.Reset()
	a.Solution.Reset()
	a.Visualization.Reset()
}
