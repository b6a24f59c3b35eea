package tutor

import "strings"

// Status is the lifecycle state of the session handle.
type Status int

const (
	StatusIdle Status = iota
	StatusCreating
	StatusReady
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusCreating:
		return "creating"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Handle owns the identifier of the current tutoring session and its
// high-level loading/error status. An empty id is a meaningful state:
// no active session. A session is never destroyed, only replaced when
// the user starts over.
type Handle struct {
	id     string
	status Status
	errMsg string
}

// NewHandle returns an idle handle with no session.
func NewHandle() *Handle {
	return &Handle{}
}

// BeginCreate validates the problem statement and transitions
// idle/failed -> creating. Returns *ValidationError for an
// empty/whitespace statement and *PreconditionError if a create is
// already in flight. No network call happens here; the caller issues
// exactly one request after a nil return.
func (h *Handle) BeginCreate(problem string) error {
	if h.status == StatusCreating {
		return &PreconditionError{Op: "create session", Reason: "creation already in progress"}
	}
	if strings.TrimSpace(problem) == "" {
		return &ValidationError{Field: "problem statement", Reason: "must not be empty"}
	}
	h.status = StatusCreating
	h.errMsg = ""
	return nil
}

// CompleteCreate stores the new session id and marks the handle ready.
// Replacing a previous session is allowed; in-flight results issued
// under the old id are discarded when they settle.
func (h *Handle) CompleteCreate(id string) {
	h.id = id
	h.status = StatusReady
	h.errMsg = ""
}

// FailCreate records the failure message and returns to failed status.
// The session id stays unset.
func (h *Handle) FailCreate(msg string) {
	h.status = StatusFailed
	h.errMsg = msg
}

// ClearError dismisses the failure message without touching the id.
func (h *Handle) ClearError() {
	h.errMsg = ""
}

// ID returns the session identifier, or "" when no session is active.
func (h *Handle) ID() string { return h.id }

// Status returns the lifecycle status.
func (h *Handle) Status() Status { return h.status }

// Err returns the recorded failure message, if any.
func (h *Handle) Err() string { return h.errMsg }

// Ready reports whether a session is active.
func (h *Handle) Ready() bool { return h.status == StatusReady && h.id != "" }
