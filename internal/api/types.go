package api

import "context"

// Client is the tutor backend capability surface consumed by the
// session orchestration. All operations are request/response; there is
// no streaming and no push.
type Client interface {
	// CreateSession submits a problem statement and returns the new
	// session id.
	CreateSession(ctx context.Context, problemText string) (*CreateSessionResponse, error)

	// SendMessage sends a free-form chat message and returns the
	// assistant's reply text.
	SendMessage(ctx context.Context, sessionID, message string) (string, error)

	// Status returns the full session status.
	Status(ctx context.Context, sessionID string) (*SessionStatus, error)

	// Facts returns the ordered list of known facts for the session.
	// Each call is independent; the list may be wholly replaced between
	// calls as the tutoring flow advances.
	Facts(ctx context.Context, sessionID string) ([]string, error)

	// Hint requests the next hint for the current question.
	Hint(ctx context.Context, sessionID string) (*HintResponse, error)

	// Validate checks the learner's answer for the current question.
	Validate(ctx context.Context, sessionID, userInput string) (*ValidationResponse, error)

	// Solution reveals the full solution for the current question.
	Solution(ctx context.Context, sessionID string) (*SolutionResponse, error)

	// Illustration renders a diagram for the current problem. The image
	// is base64-encoded and treated as opaque by the client.
	Illustration(ctx context.Context, sessionID string) (*IllustrationResponse, error)

	// Health probes the backend health endpoint.
	Health(ctx context.Context) error
}

// CreateSessionResponse is the body of POST /sessions.
type CreateSessionResponse struct {
	SessionID      string `json:"session_id"`
	Message        string `json:"message"`
	TotalQuestions int    `json:"total_questions"`
}

// ChatResponse is the body of POST /chat.
type ChatResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
}

// SessionStatus is the body of GET /status. Known facts ride on this
// payload; the Facts operation is a view over it.
type SessionStatus struct {
	SessionID            string   `json:"session_id"`
	Success              bool     `json:"success"`
	CurrentQuestionIndex int      `json:"current_question_index"`
	TotalQuestions       int      `json:"total_questions"`
	CurrentQuestion      string   `json:"current_question"`
	HintLevel            int      `json:"hint_level"`
	HintsUsed            int      `json:"hints_used"`
	IsValidated          bool     `json:"is_validated"`
	SessionComplete      bool     `json:"session_complete"`
	KnownFacts           []string `json:"known_facts"`
	OriginalProblem      string   `json:"original_problem"`
}

// HintResponse is the body of POST /hint.
type HintResponse struct {
	Success         bool   `json:"success"`
	HintText        string `json:"hint_text"`
	HintLevel       int    `json:"hint_level"`
	MaxHintsReached bool   `json:"max_hints_reached"`
}

// ValidationResponse is the body of POST /validate.
type ValidationResponse struct {
	Success         bool   `json:"success"`
	IsCorrect       bool   `json:"is_correct"`
	Feedback        string `json:"feedback"`
	Score           int    `json:"score"`
	MovedToNext     bool   `json:"moved_to_next"`
	SessionComplete bool   `json:"session_complete"`
}

// SolutionResponse is the body of GET /solution.
type SolutionResponse struct {
	Success         bool   `json:"success"`
	SolutionText    string `json:"solution_text"`
	MovedToNext     bool   `json:"moved_to_next"`
	SessionComplete bool   `json:"session_complete"`
}

// IllustrationResponse is the body of GET /illustration. B64StringViz
// carries the PNG as base64 text; the client never decodes it.
type IllustrationResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	B64StringViz string `json:"b64_string_viz"`
	Error        string `json:"error"`
}

type createSessionRequest struct {
	ProblemText string `json:"problem_text"`
	IsImage     bool   `json:"is_img"`
	Image       string `json:"img,omitempty"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type validationRequest struct {
	SessionID string `json:"session_id"`
	UserInput string `json:"user_input"`
}
