package workspace

import (
	"time"

	"github.com/vhoang/geotutor/internal/tutor"
)

// chatReplyMsg is sent when a chat turn settles.
type chatReplyMsg struct {
	Inv   tutor.Invocation
	Reply string
	Err   error
}

// hintMsg is sent when a hint request settles.
type hintMsg struct {
	Inv tutor.Invocation
	Res tutor.HintResult
	Err error
}

// validationMsg is sent when an answer validation settles.
type validationMsg struct {
	Inv    tutor.Invocation
	Answer string
	Res    tutor.ValidationResult
	Err    error
}

// solutionMsg is sent when a solution reveal settles.
type solutionMsg struct {
	Inv tutor.Invocation
	Res tutor.SolutionResult
	Err error
}

// factsMsg is sent when a facts refresh settles.
type factsMsg struct {
	Inv   tutor.Invocation
	Facts []string
	Err   error
}

// vizMsg is sent when an illustration request settles.
type vizMsg struct {
	Inv tutor.Invocation
	Res tutor.Visualization
	Err error
}

// vizSavedMsg is sent when the illustration has been written to disk.
type vizSavedMsg struct {
	Path string
	Err  error
}

// spinnerTickMsg is sent at short intervals to animate loading spinners.
type spinnerTickMsg time.Time
