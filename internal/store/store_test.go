package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "geotutor.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geotutor.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	s.Close()

	// Reopening must not re-run applied migrations.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	s.Close()
}

func TestAppendAndStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()

	events := []RequestEventData{
		{Operation: "hint", SessionID: "s1", LatencyMs: 100, Success: true},
		{Operation: "hint", SessionID: "s1", LatencyMs: 300, Success: false, ErrorMessage: "status 500"},
		{Operation: "validate", SessionID: "s1", LatencyMs: 50, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendRequest(ctx, e); err != nil {
			t.Fatalf("AppendRequest: %v", err)
		}
	}

	stats, err := repo.RequestStats(ctx)
	if err != nil {
		t.Fatalf("RequestStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for 2 operations, got %d", len(stats))
	}

	hint := stats[0]
	if hint.Operation != "hint" || hint.Count != 2 || hint.Failures != 1 {
		t.Errorf("hint stats = %+v", hint)
	}
	if hint.AvgLatencyMs != 200 {
		t.Errorf("hint avg latency = %v", hint.AvgLatencyMs)
	}
}

func TestRecentSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		err := repo.RecordSession(ctx, SessionRecord{
			SessionID: id,
			Problem:   "problem " + id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordSession: %v", err)
		}
	}

	recs, err := repo.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].SessionID != "c" || recs[1].SessionID != "b" {
		t.Errorf("wrong order: %s, %s", recs[0].SessionID, recs[1].SessionID)
	}
}
