package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/chatrooms/internal/errs"
	"github.com/thereayou/chatrooms/internal/handlers/dto"
)

const (
	msgRoomCreated        = "Chatroom created!"
	msgRoomDeleted        = "Chatroom successfully deleted!"
	msgMessageSaved       = "Message saved"
	msgMissingRoomName    = "Missing room name field"
	msgInvalidRoomName    = "Missing or invalid room name field"
	msgRoomExists         = "Room name already exists"
	msgRoomNotFound       = "Chatroom does not exist"
	msgMissingSendFields  = "Missing roomName, sender, or message fields"
	msgMissingHistoryRoom = "Missing room name or room doesn't exist"
	msgInternal           = "Internal server error"
)

// respondError writes the status for err and the endpoint's message for that
// status. Unexpected errors are logged with detail and hidden from the client.
func respondError(c *gin.Context, log *slog.Logger, err error, messages map[int]string) {
	status := errs.HTTPStatus(err)
	msg, ok := messages[status]
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		if !ok {
			msg = msgInternal
		}
	}
	c.JSON(status, dto.StatusResponse{Message: msg})
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.StatusResponse{Message: msg})
}
