package dto

// SendMessageRequest is the body of send-message.
type SendMessageRequest struct {
	RoomName string `json:"roomName" binding:"required"`
	Sender   string `json:"sender" binding:"required"`
	Message  string `json:"message" binding:"required"`
}
