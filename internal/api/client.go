package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// maxBodySize caps response reads. Illustration payloads are base64
// PNGs and can run to a few megabytes.
const maxBodySize = 16 << 20

// HTTPClient implements Client over the tutor backend REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the backend at cfg.BaseURL.
func NewHTTPClient(cfg Config) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HTTPClient) CreateSession(ctx context.Context, problemText string) (*CreateSessionResponse, error) {
	var out CreateSessionResponse
	err := c.do(ctx, http.MethodPost, "/sessions", nil,
		createSessionRequest{ProblemText: problemText}, schemaCreateSession, &out)
	if err != nil {
		return nil, err
	}
	if out.SessionID == "" {
		return nil, &Error{Op: "create session", Message: "backend returned no session id"}
	}
	return &out, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	var out ChatResponse
	err := c.do(ctx, http.MethodPost, "/chat", nil,
		chatRequest{SessionID: sessionID, Message: message}, schemaChat, &out)
	if err != nil {
		return "", err
	}
	if !out.Success {
		return "", &Error{Op: "chat", Message: "backend reported failure"}
	}
	return out.Reply, nil
}

func (c *HTTPClient) Status(ctx context.Context, sessionID string) (*SessionStatus, error) {
	var out SessionStatus
	q := url.Values{"session_id": {sessionID}}
	if err := c.do(ctx, http.MethodGet, "/status", q, nil, schemaStatus, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &Error{Op: "status", Message: "backend reported failure"}
	}
	return &out, nil
}

func (c *HTTPClient) Facts(ctx context.Context, sessionID string) ([]string, error) {
	status, err := c.Status(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return status.KnownFacts, nil
}

func (c *HTTPClient) Hint(ctx context.Context, sessionID string) (*HintResponse, error) {
	var out HintResponse
	err := c.do(ctx, http.MethodPost, "/hint", nil,
		sessionRequest{SessionID: sessionID}, schemaHint, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		// The backend reuses hint_text for the failure description.
		return nil, &Error{Op: "hint", Message: failureText(out.HintText)}
	}
	return &out, nil
}

func (c *HTTPClient) Validate(ctx context.Context, sessionID, userInput string) (*ValidationResponse, error) {
	var out ValidationResponse
	err := c.do(ctx, http.MethodPost, "/validate", nil,
		validationRequest{SessionID: sessionID, UserInput: userInput}, schemaValidation, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &Error{Op: "validate", Message: "backend reported failure"}
	}
	return &out, nil
}

func (c *HTTPClient) Solution(ctx context.Context, sessionID string) (*SolutionResponse, error) {
	var out SolutionResponse
	q := url.Values{"session_id": {sessionID}}
	if err := c.do(ctx, http.MethodGet, "/solution", q, nil, schemaSolution, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &Error{Op: "solution", Message: "backend reported failure"}
	}
	return &out, nil
}

func (c *HTTPClient) Illustration(ctx context.Context, sessionID string) (*IllustrationResponse, error) {
	var out IllustrationResponse
	q := url.Values{"session_id": {sessionID}}
	if err := c.do(ctx, http.MethodGet, "/illustration", q, nil, schemaIllustration, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &Error{Op: "illustration", Message: failureText(out.Error)}
	}
	return &out, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, "", nil)
}

// do issues one request and decodes the response into out. Responses
// are schema-checked before decoding when schemaName is set, so a
// malformed payload surfaces as a normalized *Error rather than a
// partially-filled struct.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, schemaName string, out any) error {
	op := strings.TrimLeft(path, "/")

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &Error{Op: op, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Op: op, Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{Op: op, Status: resp.StatusCode, Message: errorDetail(raw, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}

	if schemaName != "" {
		if err := validatePayload(schemaName, raw); err != nil {
			return &Error{Op: op, Message: err.Error()}
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// errorDetail extracts the backend's error description from a non-2xx
// body. FastAPI reports {"detail": "..."}.
func errorDetail(raw []byte, status int) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return http.StatusText(status)
}

func failureText(s string) string {
	if s == "" {
		return "backend reported failure"
	}
	return s
}
