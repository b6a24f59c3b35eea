package tutor

import "fmt"

// PreconditionError indicates an action was invoked in a state that does
// not permit it (no active session, or an invocation already in flight).
// The UI is expected to gate these cases with disabled controls; when one
// slips through it resolves as a silent no-op, never a transcript entry.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ValidationError indicates empty or otherwise invalid user-supplied text.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// BackendFailure is the single failure representation for everything that
// goes wrong past the client boundary: transport errors, non-success
// payloads, malformed responses. Message is human-readable and safe for
// inline banner display; it is never narrated verbatim into the transcript.
type BackendFailure struct {
	Op      string
	Message string
}

func (e *BackendFailure) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// FailureMessage extracts a banner-safe message from an error.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	if bf, ok := err.(*BackendFailure); ok {
		return bf.Message
	}
	return err.Error()
}
