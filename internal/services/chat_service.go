package services

import (
	"context"
	"log/slog"

	"github.com/thereayou/chatrooms/internal/models"
)

// ChatService is what the gateway calls for room management and history.
type ChatService struct {
	rooms    RoomStore
	messages MessageLog
	log      *slog.Logger
}

func NewChatService(rooms RoomStore, messages MessageLog, log *slog.Logger) *ChatService {
	return &ChatService{rooms: rooms, messages: messages, log: log}
}

func (s *ChatService) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	return s.rooms.CreateRoom(ctx, name)
}

func (s *ChatService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.rooms.ListRooms(ctx)
}

func (s *ChatService) History(ctx context.Context, roomName string) ([]models.Message, error) {
	return s.messages.ListRoomMessages(ctx, roomName)
}

// DeleteRoom removes the room and then its messages. Stores that implement
// CascadingRoomStore do both in one transaction. Otherwise the message step
// runs only after the room delete succeeded, and its failure leaves orphan
// messages behind; that is logged, not rolled back.
func (s *ChatService) DeleteRoom(ctx context.Context, name string) error {
	if cascading, ok := s.rooms.(CascadingRoomStore); ok {
		_, messages, err := cascading.DeleteRoomCascade(ctx, name)
		if err != nil {
			return err
		}
		s.log.Info("room deleted", "room", name, "messages", messages)
		return nil
	}

	if _, err := s.rooms.DeleteRoom(ctx, name); err != nil {
		return err
	}

	messages, err := s.messages.DeleteRoomMessages(ctx, name)
	if err != nil {
		s.log.Warn("room deleted but its messages were not; orphan messages remain",
			"room", name, "error", err)
		return nil
	}
	s.log.Info("room deleted", "room", name, "messages", messages)
	return nil
}
