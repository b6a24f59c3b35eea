package api

import (
	"context"
	"time"

	"github.com/vhoang/geotutor/internal/logging"
	"github.com/vhoang/geotutor/internal/store"
)

// LoggingClient is a decorator that records every backend request to
// the debug log and the activity store.
type LoggingClient struct {
	inner Client
	log   *logging.Logger
	repo  store.ActivityRepo
}

var _ Client = (*LoggingClient)(nil)

// WithLogging wraps a Client with request logging. repo may be nil when
// no activity store is open.
func WithLogging(c Client, log *logging.Logger, repo store.ActivityRepo) *LoggingClient {
	if log == nil {
		log = logging.Nop()
	}
	return &LoggingClient{inner: c, log: log.Sub("api"), repo: repo}
}

// record logs one settled request. Logging never fails the request.
func (l *LoggingClient) record(ctx context.Context, op, sessionID string, start time.Time, err error) {
	latency := time.Since(start)

	ev := l.log.Debug().
		Str("operation", op).
		Str("session_id", sessionID).
		Dur("latency", latency)
	if err != nil {
		ev = l.log.Warn().
			Str("operation", op).
			Str("session_id", sessionID).
			Dur("latency", latency).
			Err(err)
	}
	ev.Msg("backend request")

	if l.repo == nil {
		return
	}
	data := store.RequestEventData{
		Operation: op,
		SessionID: sessionID,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	if logErr := l.repo.AppendRequest(ctx, data); logErr != nil {
		l.log.Warn().Err(logErr).Msg("failed to record request event")
	}
}

func (l *LoggingClient) CreateSession(ctx context.Context, problemText string) (*CreateSessionResponse, error) {
	start := time.Now()
	resp, err := l.inner.CreateSession(ctx, problemText)
	sessionID := ""
	if resp != nil {
		sessionID = resp.SessionID
	}
	l.record(ctx, "create_session", sessionID, start, err)
	return resp, err
}

func (l *LoggingClient) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	start := time.Now()
	reply, err := l.inner.SendMessage(ctx, sessionID, message)
	l.record(ctx, "chat", sessionID, start, err)
	return reply, err
}

func (l *LoggingClient) Status(ctx context.Context, sessionID string) (*SessionStatus, error) {
	start := time.Now()
	resp, err := l.inner.Status(ctx, sessionID)
	l.record(ctx, "status", sessionID, start, err)
	return resp, err
}

func (l *LoggingClient) Facts(ctx context.Context, sessionID string) ([]string, error) {
	start := time.Now()
	facts, err := l.inner.Facts(ctx, sessionID)
	l.record(ctx, "facts", sessionID, start, err)
	return facts, err
}

func (l *LoggingClient) Hint(ctx context.Context, sessionID string) (*HintResponse, error) {
	start := time.Now()
	resp, err := l.inner.Hint(ctx, sessionID)
	l.record(ctx, "hint", sessionID, start, err)
	return resp, err
}

func (l *LoggingClient) Validate(ctx context.Context, sessionID, userInput string) (*ValidationResponse, error) {
	start := time.Now()
	resp, err := l.inner.Validate(ctx, sessionID, userInput)
	l.record(ctx, "validate", sessionID, start, err)
	return resp, err
}

func (l *LoggingClient) Solution(ctx context.Context, sessionID string) (*SolutionResponse, error) {
	start := time.Now()
	resp, err := l.inner.Solution(ctx, sessionID)
	l.record(ctx, "solution", sessionID, start, err)
	return resp, err
}

func (l *LoggingClient) Illustration(ctx context.Context, sessionID string) (*IllustrationResponse, error) {
	start := time.Now()
	resp, err := l.inner.Illustration(ctx, sessionID)
	l.record(ctx, "illustration", sessionID, start, err)
	return resp, err
}

func (l *LoggingClient) Health(ctx context.Context) error {
	start := time.Now()
	err := l.inner.Health(ctx)
	l.record(ctx, "health", "", start, err)
	return err
}
