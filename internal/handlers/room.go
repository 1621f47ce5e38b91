package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/chatrooms/internal/handlers/dto"
	"github.com/thereayou/chatrooms/internal/services"
)

type RoomHandler struct {
	chat *services.ChatService
	log  *slog.Logger
}

func NewRoomHandler(chat *services.ChatService, log *slog.Logger) *RoomHandler {
	return &RoomHandler{chat: chat, log: log}
}

// CreateRoom создает новую комнату
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgMissingRoomName)
		return
	}

	room, err := h.chat.CreateRoom(c.Request.Context(), req.RoomName)
	if err != nil {
		respondError(c, h.log, err, map[int]string{
			http.StatusBadRequest: msgMissingRoomName,
			http.StatusConflict:   msgRoomExists,
		})
		return
	}

	h.log.Info("chatroom created", "room", room.Name)
	respondMessage(c, http.StatusCreated, msgRoomCreated)
}

// GetRooms lists every room. An empty store answers 400 with an empty list.
func (h *RoomHandler) GetRooms(c *gin.Context) {
	rooms, err := h.chat.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, map[int]string{
			http.StatusInternalServerError: "Internal service error",
		})
		return
	}

	if len(rooms) == 0 {
		c.JSON(http.StatusBadRequest, rooms)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// DeleteRoom удаляет комнату вместе с её сообщениями
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, msgInvalidRoomName)
		return
	}

	if err := h.chat.DeleteRoom(c.Request.Context(), req.RoomName); err != nil {
		respondError(c, h.log, err, map[int]string{
			http.StatusBadRequest: msgInvalidRoomName,
			http.StatusNotFound:   msgRoomNotFound,
		})
		return
	}

	respondMessage(c, http.StatusOK, msgRoomDeleted)
}
