package tutor

// Invocation is the token issued by Begin and redeemed by Finish. It
// pins the session identifier under which the request was issued so a
// late-arriving result for a superseded session can be discarded.
type Invocation struct {
	SessionID string
}

// Action holds the per-capability client state: one loading flag, one
// error message, and the latest typed payload. No two actions share
// mutable state; each reads the session handle only to check
// preconditions and detect staleness.
//
// The Begin/Finish pair is the event-driven rendition of invoke: Begin
// runs in the event handler that starts the request, the network call
// runs between, and Finish runs in the handler that receives the
// settled result. Finish clears the loading flag exactly once
// regardless of success or failure.
type Action[T any] struct {
	name       string
	handle     *Handle
	loading    bool
	errMsg     string
	payload    T
	hasPayload bool
}

// NewAction creates an action client bound to the session handle.
func NewAction[T any](name string, handle *Handle) *Action[T] {
	return &Action[T]{name: name, handle: handle}
}

// Begin checks preconditions and marks the action in flight. It fails
// fast with *PreconditionError when no session is active or a request
// is already outstanding. On success the caller must issue exactly one
// request and eventually call Finish with the returned invocation.
func (a *Action[T]) Begin() (Invocation, error) {
	if !a.handle.Ready() {
		return Invocation{}, &PreconditionError{Op: a.name, Reason: "no active session"}
	}
	if a.loading {
		return Invocation{}, &PreconditionError{Op: a.name, Reason: "request already in flight"}
	}
	a.loading = true
	a.errMsg = ""
	return Invocation{SessionID: a.handle.ID()}, nil
}

// Finish settles an invocation. It returns false, leaving all state
// untouched, when the invocation's session no longer matches the
// current one (the stale-result discard). Otherwise it clears the
// loading flag and stores either the payload or a normalized error
// message. Errors never propagate past this boundary.
func (a *Action[T]) Finish(inv Invocation, payload T, err error) bool {
	if inv.SessionID != a.handle.ID() {
		return false
	}
	a.loading = false
	if err != nil {
		a.errMsg = FailureMessage(err)
		return true
	}
	a.payload = payload
	a.hasPayload = true
	return true
}

// Loading reports whether a request is outstanding.
func (a *Action[T]) Loading() bool { return a.loading }

// Err returns the stored failure message for banner display, or "".
func (a *Action[T]) Err() string { return a.errMsg }

// ClearError dismisses the stored failure message.
func (a *Action[T]) ClearError() { a.errMsg = "" }

// Payload returns the stored result and whether one is present.
func (a *Action[T]) Payload() (T, bool) { return a.payload, a.hasPayload }

// Name returns the capability name used in error messages.
func (a *Action[T]) Name() string { return a.name }

// Reset drops payload, error, and loading state. Called when a session
// is replaced so stale results from the previous session never show.
func (a *Action[T]) Reset() {
	var zero T
	a.payload = zero
	a.hasPayload = false
	a.errMsg = ""
	a.loading = false
}
