package models

import (
	"time"
)

// Bookmark represents a user-owned bookmark pairing a title and a link.
// UserID is set once at creation and never changed by edits.
type Bookmark struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Link        string    `gorm:"not null" json:"link"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}
