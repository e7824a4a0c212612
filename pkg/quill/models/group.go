package models

import (
	"time"
)

// Group is a topic board that posts can be filed under.
// Groups are created administratively, not through the web surface,
// and their slug is the stable address of the group feed.
type Group struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`

	// Relationships
	Posts []Post `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}
