package store

import (
	"context"
	"database/sql"
	"time"
)

// RequestEventData captures one backend request for the activity log.
type RequestEventData struct {
	Operation    string
	SessionID    string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// SessionRecord is a locally recorded session start.
type SessionRecord struct {
	SessionID string
	Problem   string
	CreatedAt time.Time
}

// OperationStats aggregates request events per operation.
type OperationStats struct {
	Operation    string
	Count        int
	Failures     int
	AvgLatencyMs float64
}

// ActivityRepo provides append and query access to the activity log.
type ActivityRepo interface {
	// AppendRequest records a backend request event.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// RecordSession records a session start.
	RecordSession(ctx context.Context, rec SessionRecord) error

	// RecentSessions returns up to limit session records, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// RequestStats aggregates request events per operation.
	RequestStats(ctx context.Context) ([]OperationStats, error)
}

type activityRepo struct {
	db *sql.DB
}

var _ ActivityRepo = (*activityRepo)(nil)

func (r *activityRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO request_events (timestamp, operation, session_id, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		data.Operation,
		data.SessionID,
		data.LatencyMs,
		boolToInt(data.Success),
		data.ErrorMessage,
	)
	return err
}

func (r *activityRepo) RecordSession(ctx context.Context, rec SessionRecord) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions (session_id, problem, created_at)
		VALUES (?, ?, ?)`,
		rec.SessionID,
		rec.Problem,
		created.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (r *activityRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, problem, created_at
		FROM sessions
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var created string
		if err := rows.Scan(&rec.SessionID, &rec.Problem, &created); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *activityRepo) RequestStats(ctx context.Context) ([]OperationStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT operation,
			COUNT(*),
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END),
			AVG(latency_ms)
		FROM request_events
		GROUP BY operation
		ORDER BY operation`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OperationStats
	for rows.Next() {
		var st OperationStats
		if err := rows.Scan(&st.Operation, &st.Count, &st.Failures, &st.AvgLatencyMs); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
