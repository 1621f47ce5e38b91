package services

import (
	"context"

	"github.com/thereayou/chatrooms/internal/models"
)

// RoomStore is the durable table of rooms keyed by name.
type RoomStore interface {
	CreateRoom(ctx context.Context, name string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	DeleteRoom(ctx context.Context, name string) (int64, error)
}

// MessageLog is the append-only, per-room message history.
type MessageLog interface {
	AppendMessage(ctx context.Context, roomName, sender, body string) (*models.Message, error)
	ListRoomMessages(ctx context.Context, roomName string) ([]models.Message, error)
	DeleteRoomMessages(ctx context.Context, roomName string) (int64, error)
}

// CascadingRoomStore deletes a room and its messages atomically.
type CascadingRoomStore interface {
	DeleteRoomCascade(ctx context.Context, name string) (rooms, messages int64, err error)
}
