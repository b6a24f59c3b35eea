package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestCreateSession(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/sessions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["problem_text"] != "Cho tam giác ABC" {
			t.Errorf("problem_text = %v", req["problem_text"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"session_id":      "sess-42",
			"message":         "Session created successfully",
			"total_questions": 3,
		})
	})

	resp, err := c.CreateSession(context.Background(), "Cho tam giác ABC")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if resp.SessionID != "sess-42" || resp.TotalQuestions != 3 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHint(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":           true,
			"hint_text":         "Dùng Pythagore",
			"hint_level":        1,
			"max_hints_reached": false,
		})
	})

	resp, err := c.Hint(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if resp.HintText != "Dùng Pythagore" || resp.MaxHintsReached {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHintBackendReportedFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":           false,
			"hint_text":         "Failed to generate hint",
			"hint_level":        2,
			"max_hints_reached": true,
		})
	})

	_, err := c.Hint(context.Background(), "sess-1")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "Failed to generate hint" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestNonOKStatusUsesDetail(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"detail": "Session not found or expired"})
	})

	_, err := c.Hint(context.Background(), "gone")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "Session not found or expired" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestMalformedPayloadNormalized(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		// hint_text has the wrong type.
		json.NewEncoder(w).Encode(map[string]any{
			"success":           true,
			"hint_text":         7,
			"max_hints_reached": false,
		})
	})

	_, err := c.Hint(context.Background(), "sess-1")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("malformed payload should normalize to *Error, got %v", err)
	}
}

func TestTransportFailureNormalized(t *testing.T) {
	c := NewHTTPClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond})

	_, err := c.Validate(context.Background(), "sess-1", "x = 5")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("transport failure should carry no HTTP status, got %d", apiErr.Status)
	}
}

func TestValidate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["user_input"] != "Chu vi = 12cm" {
			t.Errorf("user_input = %v", req["user_input"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":       true,
			"is_correct":    true,
			"feedback":      "Chính xác!",
			"score":         95,
			"moved_to_next": true,
		})
	})

	resp, err := c.Validate(context.Background(), "sess-1", "Chu vi = 12cm")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !resp.IsCorrect || !resp.MovedToNext || resp.Feedback != "Chính xác!" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestFactsRideOnStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("session_id") != "sess-1" {
			t.Errorf("session_id = %q", r.URL.Query().Get("session_id"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"known_facts": []string{"AB = 3cm", "AC = 4cm", "AC = 4cm"},
		})
	})

	facts, err := c.Facts(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Facts: %v", err)
	}
	// Order preserved, duplicates kept.
	if len(facts) != 3 || facts[0] != "AB = 3cm" || facts[2] != "AC = 4cm" {
		t.Errorf("facts = %v", facts)
	}
}

func TestIllustration(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"message":        "ok",
			"b64_string_viz": "aVZCT1J3MEtHZ28=",
		})
	})

	resp, err := c.Illustration(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Illustration: %v", err)
	}
	if resp.B64StringViz != "aVZCT1J3MEtHZ28=" {
		t.Errorf("payload = %q", resp.B64StringViz)
	}
}

func TestHealth(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}
}
