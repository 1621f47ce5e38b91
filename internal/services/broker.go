package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/thereayou/chatrooms/internal/models"
	"github.com/thereayou/chatrooms/internal/websocket"
)

// Directory yields the live subscribers of a room.
type Directory interface {
	SubscribersOf(roomName string) []websocket.Subscriber
}

// Broker persists a message and then publishes it to the room's live
// subscribers. Every send path goes through it so the order never flips.
type Broker struct {
	messages  MessageLog
	directory Directory
	timeout   time.Duration
	log       *slog.Logger
}

func NewBroker(messages MessageLog, directory Directory, timeout time.Duration, log *slog.Logger) *Broker {
	return &Broker{
		messages:  messages,
		directory: directory,
		timeout:   timeout,
		log:       log,
	}
}

// SendMessage returns the stored message no matter how many subscribers got
// the push. Validation and storage errors stop it before anything is
// published.
func (b *Broker) SendMessage(ctx context.Context, roomName, sender, body string) (*models.Message, error) {
	// The sender going away must not abandon a half-done send.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
	defer cancel()

	msg, err := b.messages.AppendMessage(ctx, roomName, sender, body)
	if err != nil {
		return nil, err
	}

	subs := b.directory.SubscribersOf(roomName)
	delivered := 0
	for _, s := range subs {
		if err := s.SendMessage(websocket.TypeNewMessage, msg); err != nil {
			b.log.Warn("fan-out push failed",
				"room", roomName, "client_id", s.ID(), "message_id", msg.ID, "error", err)
			continue
		}
		delivered++
	}

	b.log.Debug("message published",
		"room", roomName, "message_id", msg.ID, "subscribers", len(subs), "delivered", delivered)
	return msg, nil
}
