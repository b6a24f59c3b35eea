package tutor

import (
	"errors"
	"testing"
)

func TestBeginCreateEmptyStatement(t *testing.T) {
	h := NewHandle()

	err := h.BeginCreate("   \n\t ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if h.Status() != StatusIdle {
		t.Errorf("status changed on invalid input: %s", h.Status())
	}
	if h.ID() != "" {
		t.Errorf("session id set without creation: %q", h.ID())
	}
}

func TestCreateLifecycle(t *testing.T) {
	h := NewHandle()

	if err := h.BeginCreate("Cho tam giác ABC vuông tại A"); err != nil {
		t.Fatalf("BeginCreate: %v", err)
	}
	if h.Status() != StatusCreating {
		t.Fatalf("expected creating, got %s", h.Status())
	}

	// A second create while one is in flight is refused.
	err := h.BeginCreate("another problem")
	var perr *PreconditionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PreconditionError for concurrent create, got %v", err)
	}

	h.CompleteCreate("sess-1")
	if !h.Ready() {
		t.Error("expected ready after CompleteCreate")
	}
	if h.ID() != "sess-1" {
		t.Errorf("session id = %q", h.ID())
	}
}

func TestFailCreateKeepsIDUnset(t *testing.T) {
	h := NewHandle()
	if err := h.BeginCreate("some problem"); err != nil {
		t.Fatalf("BeginCreate: %v", err)
	}

	h.FailCreate("backend unreachable")
	if h.Status() != StatusFailed {
		t.Errorf("status = %s", h.Status())
	}
	if h.ID() != "" {
		t.Errorf("id set after failure: %q", h.ID())
	}
	if h.Err() != "backend unreachable" {
		t.Errorf("error message = %q", h.Err())
	}

	h.ClearError()
	if h.Err() != "" {
		t.Error("ClearError did not clear the message")
	}
	if h.Status() != StatusFailed {
		t.Error("ClearError must not change status")
	}

	// Retry from failed is allowed.
	if err := h.BeginCreate("some problem"); err != nil {
		t.Errorf("retry after failure refused: %v", err)
	}
}
