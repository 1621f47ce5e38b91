package models

import "time"

// Message is immutable once stored. ID grows with insertion order and is
// used to return a room's history oldest first.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomName  string    `gorm:"index;not null" json:"roomName"`
	Sender    string    `gorm:"not null" json:"sender"`
	Body      string    `gorm:"not null" json:"message"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}
