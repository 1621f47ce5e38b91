package database

import (
	"context"

	"github.com/thereayou/chatrooms/internal/models"
)

// AppendMessage stores a message stamped with the current time. The room is
// not checked for existence.
func (d *Database) AppendMessage(ctx context.Context, roomName, sender, body string) (*models.Message, error) {
	switch {
	case roomName == "":
		return nil, invalid("append message", "room name")
	case sender == "":
		return nil, invalid("append message", "sender")
	case body == "":
		return nil, invalid("append message", "message body")
	}

	db, cancel := d.bounded(ctx)
	defer cancel()

	msg := &models.Message{
		RoomName:  roomName,
		Sender:    sender,
		Body:      body,
		Timestamp: d.stamp(),
	}
	if err := db.Create(msg).Error; err != nil {
		return nil, storageFault("append message", err)
	}
	return msg, nil
}

// ListRoomMessages returns the room's history oldest first. A room without
// messages yields an empty, non-nil slice.
func (d *Database) ListRoomMessages(ctx context.Context, roomName string) ([]models.Message, error) {
	if roomName == "" {
		return nil, invalid("list messages", "room name")
	}

	db, cancel := d.bounded(ctx)
	defer cancel()

	messages := make([]models.Message, 0)
	if err := db.Where("room_name = ?", roomName).Order("id ASC").Find(&messages).Error; err != nil {
		return nil, storageFault("list messages", err)
	}
	return messages, nil
}

func (d *Database) DeleteRoomMessages(ctx context.Context, roomName string) (int64, error) {
	if roomName == "" {
		return 0, invalid("delete messages", "room name")
	}

	db, cancel := d.bounded(ctx)
	defer cancel()

	res := db.Where("room_name = ?", roomName).Delete(&models.Message{})
	if res.Error != nil {
		return 0, storageFault("delete messages", res.Error)
	}
	return res.RowsAffected, nil
}
