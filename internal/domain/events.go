package domain

import "encoding/json"

// Event is an inbound event produced by the hosting transport.
type Event struct {
	Kind      EventKind       `json:"kind"`
	SessionID string          `json:"session_id"`
	Action    ActionName      `json:"action,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Text      string          `json:"text,omitempty"`
}

// SubmissionPayload is the submit_assessment payload: question identifier to
// raw answer, scalar string or string list per the question kind.
type SubmissionPayload map[string]json.RawMessage

// FieldError reports one invalid submission field.
type FieldError struct {
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
}
