package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is identified by Name on the wire; ID never leaves the storage layer.
type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Name      string    `gorm:"uniqueIndex;not null" json:"roomName"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (r *Room) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
