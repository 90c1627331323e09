package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	// Client → server
	MessageTypeDistribute MessageType = "distribute"
	MessageTypeCustom     MessageType = "custom"
	MessageTypeInventory  MessageType = "inventory"

	// Server → client
	MessageTypeDistributionResult MessageType = "distribution_result"
	MessageTypeCustomResult       MessageType = "custom_result"
	MessageTypeInventoryState     MessageType = "inventory_state"
	MessageTypeError              MessageType = "error"
)

// Message is the websocket envelope. Payloads are type-specific and carried
// as raw JSON so the connection can dispatch before decoding.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// ErrorData is the payload of an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
