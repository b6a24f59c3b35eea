package api

import (
	"context"
	"sync"
)

// Mock is a deterministic Client for tests. Unset function fields
// return a generic failure. Calls records operation names in order.
type Mock struct {
	CreateSessionFunc func(ctx context.Context, problemText string) (*CreateSessionResponse, error)
	SendMessageFunc   func(ctx context.Context, sessionID, message string) (string, error)
	StatusFunc        func(ctx context.Context, sessionID string) (*SessionStatus, error)
	FactsFunc         func(ctx context.Context, sessionID string) ([]string, error)
	HintFunc          func(ctx context.Context, sessionID string) (*HintResponse, error)
	ValidateFunc      func(ctx context.Context, sessionID, userInput string) (*ValidationResponse, error)
	SolutionFunc      func(ctx context.Context, sessionID string) (*SolutionResponse, error)
	IllustrationFunc  func(ctx context.Context, sessionID string) (*IllustrationResponse, error)
	HealthFunc        func(ctx context.Context) error

	mu    sync.Mutex
	Calls []string
}

var _ Client = (*Mock)(nil)

func (m *Mock) called(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, op)
}

// CallCount returns how many times op was invoked.
func (m *Mock) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (m *Mock) CreateSession(ctx context.Context, problemText string) (*CreateSessionResponse, error) {
	m.called("create_session")
	if m.CreateSessionFunc == nil {
		return nil, &Error{Op: "create session", Message: "mock: not configured"}
	}
	return m.CreateSessionFunc(ctx, problemText)
}

func (m *Mock) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	m.called("chat")
	if m.SendMessageFunc == nil {
		return "", &Error{Op: "chat", Message: "mock: not configured"}
	}
	return m.SendMessageFunc(ctx, sessionID, message)
}

func (m *Mock) Status(ctx context.Context, sessionID string) (*SessionStatus, error) {
	m.called("status")
	if m.StatusFunc == nil {
		return nil, &Error{Op: "status", Message: "mock: not configured"}
	}
	return m.StatusFunc(ctx, sessionID)
}

func (m *Mock) Facts(ctx context.Context, sessionID string) ([]string, error) {
	m.called("facts")
	if m.FactsFunc == nil {
		return nil, &Error{Op: "facts", Message: "mock: not configured"}
	}
	return m.FactsFunc(ctx, sessionID)
}

func (m *Mock) Hint(ctx context.Context, sessionID string) (*HintResponse, error) {
	m.called("hint")
	if m.HintFunc == nil {
		return nil, &Error{Op: "hint", Message: "mock: not configured"}
	}
	return m.HintFunc(ctx, sessionID)
}

func (m *Mock) Validate(ctx context.Context, sessionID, userInput string) (*ValidationResponse, error) {
	m.called("validate")
	if m.ValidateFunc == nil {
		return nil, &Error{Op: "validate", Message: "mock: not configured"}
	}
	return m.ValidateFunc(ctx, sessionID, userInput)
}

func (m *Mock) Solution(ctx context.Context, sessionID string) (*SolutionResponse, error) {
	m.called("solution")
	if m.SolutionFunc == nil {
		return nil, &Error{Op: "solution", Message: "mock: not configured"}
	}
	return m.SolutionFunc(ctx, sessionID)
}

func (m *Mock) Illustration(ctx context.Context, sessionID string) (*IllustrationResponse, error) {
	m.called("illustration")
	if m.IllustrationFunc == nil {
		return nil, &Error{Op: "illustration", Message: "mock: not configured"}
	}
	return m.IllustrationFunc(ctx, sessionID)
}

func (m *Mock) Health(ctx context.Context) error {
	m.called("health")
	if m.HealthFunc == nil {
		return nil
	}
	return m.HealthFunc(ctx)
}
