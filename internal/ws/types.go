package ws

import (
	"encoding/json"
)

// MessageType discriminates the WebSocket messages the server handles.
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope for every WebSocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries one line of move notation from a client.
type MovePayload struct {
	Move string `json:"move"`
}

// ErrorPayload carries a recoverable failure back to the client.
type ErrorPayload struct {
	Error string `json:"error"`
}
