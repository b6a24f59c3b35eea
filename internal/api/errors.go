package api

import "fmt"

// Error is the single failure representation at the client boundary.
// Transport failures, non-2xx statuses, success=false payloads, and
// malformed responses all normalize to it.
type Error struct {
	Op      string // operation name, e.g. "hint"
	Status  int    // HTTP status, 0 for transport errors
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
