// Package protocol defines the WebSocket message protocol between chat
// clients and the consultant.
package protocol

import (
	"encoding/json"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

// Message types from client to server
const (
	TypeHello   = "hello"
	TypeWelcome = "welcome"
	TypeAction  = "action"
	TypeMessage = "message"
	TypeHistory = "history"
)

// Message types from server to client
const (
	TypeHelloAck    = "hello_ack"
	TypeReply       = "reply"
	TypeHistoryPage = "history_page"
	TypeError       = "error"
)

// BaseMessage contains common fields for all messages.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts"`
	SessionID string `json:"session_id,omitempty"`
}

// HelloMessage is sent by the client to establish the connection. A missing
// session id asks the server to mint one.
type HelloMessage struct {
	BaseMessage
	ClientMeta map[string]string `json:"client_meta,omitempty"`
}

// HelloAckMessage is sent by the server after a successful hello; it
// carries the bound session id.
type HelloAckMessage struct {
	BaseMessage
}

// ActionMessage triggers a named action; Payload carries the answers
// mapping for submit_assessment.
type ActionMessage struct {
	BaseMessage
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// TextMessage carries free-text input from the user.
type TextMessage struct {
	BaseMessage
	Text string `json:"text"`
}

// HistoryRequestMessage asks for the session's conversation history. A
// positive Limit returns only the most recent turns.
type HistoryRequestMessage struct {
	BaseMessage
	Limit int `json:"limit,omitempty"`
}

// HistoryPageMessage carries the requested history, oldest first.
type HistoryPageMessage struct {
	BaseMessage
	Turns []domain.Turn `json:"turns"`
}

// ReplyMessage carries one outbound response structure.
type ReplyMessage struct {
	BaseMessage
	Reply domain.Reply `json:"reply"`
}

// ErrorMessage is sent by the server when an error occurs.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage  = "invalid_message"
	ErrorCodeSessionRequired = "session_required"
	ErrorCodeInternalError   = "internal_error"
)
