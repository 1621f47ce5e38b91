package database

import (
	"time"

	"gorm.io/gorm"
)

// Database is the gorm backed Room Store and Message Log.
type Database struct {
	db *gorm.DB

	// timeout bounds every call so a stalled database surfaces as a
	// storage fault instead of a hung request.
	timeout time.Duration
	now     func() time.Time
}

func NewDatabase(db *gorm.DB, timeout time.Duration) *Database {
	return &Database{db: db, timeout: timeout, now: time.Now}
}
