package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thereayou/chatrooms/internal/errs"
	"github.com/thereayou/chatrooms/internal/models"
)

// CreateRoom inserts the room unless one with the same name exists. The
// unique index on name decides, so concurrent creators cannot both win.
func (d *Database) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	if name == "" {
		return nil, invalid("create room", "room name")
	}

	db, cancel := d.bounded(ctx)
	defer cancel()

	room := &models.Room{Name: name, CreatedAt: d.stamp()}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(room)
	if res.Error != nil {
		return nil, storageFault("create room", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("create room %q: %w", name, errs.ErrAlreadyExists)
	}
	return room, nil
}

func (d *Database) ListRooms(ctx context.Context) ([]models.Room, error) {
	db, cancel := d.bounded(ctx)
	defer cancel()

	rooms := make([]models.Room, 0)
	if err := db.Order("created_at ASC").Order("name ASC").Find(&rooms).Error; err != nil {
		return nil, storageFault("list rooms", err)
	}
	return rooms, nil
}

// DeleteRoom removes the room record only and reports how many rows went.
func (d *Database) DeleteRoom(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, invalid("delete room", "room name")
	}

	db, cancel := d.bounded(ctx)
	defer cancel()

	res := db.Where("name = ?", name).Delete(&models.Room{})
	if res.Error != nil {
		return 0, storageFault("delete room", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("delete room %q: %w", name, errs.ErrNotFound)
	}
	return res.RowsAffected, nil
}

// DeleteRoomCascade removes the room and all of its messages in one
// transaction. Messages are left alone when the room does not exist.
func (d *Database) DeleteRoomCascade(ctx context.Context, name string) (rooms, messages int64, err error) {
	if name == "" {
		return 0, 0, invalid("delete room", "room name")
	}

	db, cancel := d.bounded(ctx)
	defer cancel()

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("name = ?", name).Delete(&models.Room{})
		if res.Error != nil {
			return storageFault("delete room", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete room %q: %w", name, errs.ErrNotFound)
		}
		rooms = res.RowsAffected

		res = tx.Where("room_name = ?", name).Delete(&models.Message{})
		if res.Error != nil {
			return storageFault("delete room messages", res.Error)
		}
		messages = res.RowsAffected
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrStorageFault):
		return 0, 0, err
	default:
		// begin or commit failed
		return 0, 0, storageFault("delete room", err)
	}
	return rooms, messages, nil
}
