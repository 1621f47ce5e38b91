package dto

// RoomRequest is the body of create-room, delete-room and get-messages.
type RoomRequest struct {
	RoomName string `json:"roomName" binding:"required"`
}

type StatusResponse struct {
	Message string `json:"message"`
}
