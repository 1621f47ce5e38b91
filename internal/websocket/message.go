package websocket

import (
	"encoding/json"
	"time"
)

// MessageType names a live-channel event.
type MessageType string

const (
	// client -> server
	TypeJoinRoom    MessageType = "joinRoom"
	TypeLeaveRoom   MessageType = "leaveRoom"
	TypeSendMessage MessageType = "sendMessage"

	// server -> client
	TypeNewMessage MessageType = "newMessage"
	TypeError      MessageType = "error"
)

// Message is the envelope of every frame on the live channel.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// SendPayload is the data of a sendMessage event.
type SendPayload struct {
	RoomName string `json:"roomName"`
	Sender   string `json:"sender"`
	Message  string `json:"message"`
}

// roomName decodes the data of joinRoom, which is either a bare JSON string
// or an object carrying roomName.
func (m *Message) roomName() (string, error) {
	if len(m.Data) == 0 {
		return "", ErrInvalidMessage
	}

	var name string
	if err := json.Unmarshal(m.Data, &name); err == nil {
		return name, nil
	}

	var obj struct {
		RoomName string `json:"roomName"`
	}
	if err := json.Unmarshal(m.Data, &obj); err != nil {
		return "", ErrInvalidMessage
	}
	return obj.RoomName, nil
}
