package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/thereayou/chatrooms/internal/errs"
	"github.com/thereayou/chatrooms/internal/services"
	"github.com/thereayou/chatrooms/internal/websocket"
)

// MessageHandler handles live-channel events other than join and leave.
type MessageHandler struct {
	broker *services.Broker
	log    *slog.Logger
}

func NewMessageHandler(broker *services.Broker, log *slog.Logger) *MessageHandler {
	return &MessageHandler{broker: broker, log: log}
}

func (h *MessageHandler) HandleMessage(client *websocket.Client, msg *websocket.Message) error {
	switch msg.Type {
	case websocket.TypeSendMessage:
		return h.handleSendMessage(client, msg)

	default:
		h.log.Debug("unknown message type", "type", msg.Type, "client_id", client.ID())
		return nil
	}
}

// handleSendMessage returns errors whose text is safe to show the sender.
func (h *MessageHandler) handleSendMessage(client *websocket.Client, msg *websocket.Message) error {
	var payload websocket.SendPayload
	if len(msg.Data) == 0 || json.Unmarshal(msg.Data, &payload) != nil {
		return errors.New(msgMissingSendFields)
	}

	// The connection closing mid-send does not cancel the send.
	_, err := h.broker.SendMessage(context.Background(), payload.RoomName, payload.Sender, payload.Message)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrInvalidInput):
		return errors.New(msgMissingSendFields)
	default:
		h.log.Error("live send failed", "client_id", client.ID(), "room", payload.RoomName, "error", err)
		return errors.New(msgInternal)
	}
}
