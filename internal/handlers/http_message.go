package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/chatrooms/internal/handlers/dto"
	"github.com/thereayou/chatrooms/internal/services"
)

type HTTPMessageHandler struct {
	chat   *services.ChatService
	broker *services.Broker
	log    *slog.Logger
}

func NewHTTPMessageHandler(chat *services.ChatService, broker *services.Broker, log *slog.Logger) *HTTPMessageHandler {
	return &HTTPMessageHandler{chat: chat, broker: broker, log: log}
}

// SendMessage stores the message and pushes it to the room's live
// subscribers, same as the websocket sendMessage event.
func (h *HTTPMessageHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgMissingSendFields)
		return
	}

	if _, err := h.broker.SendMessage(c.Request.Context(), req.RoomName, req.Sender, req.Message); err != nil {
		respondError(c, h.log, err, map[int]string{
			http.StatusBadRequest: msgMissingSendFields,
		})
		return
	}

	respondMessage(c, http.StatusOK, msgMessageSaved)
}

// GetMessages returns the room history oldest first; no messages is an
// empty list, not an error.
func (h *HTTPMessageHandler) GetMessages(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgMissingHistoryRoom)
		return
	}

	messages, err := h.chat.History(c.Request.Context(), req.RoomName)
	if err != nil {
		respondError(c, h.log, err, map[int]string{
			http.StatusBadRequest: msgMissingHistoryRoom,
		})
		return
	}

	c.JSON(http.StatusOK, messages)
}
