package models

import "time"

// Viewer tags which side of a HelpDex chat an actor is on. It is threaded
// explicitly through the helpdesk flow instead of scattered boolean checks.
type Viewer string

const (
	ViewerGuest Viewer = "guest"
	ViewerAdmin Viewer = "admin"
)

type ChatMessage struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"index;size:128" json:"userId"`
	Sender Viewer `gorm:"size:8" json:"sender"`
	Text   string `gorm:"type:text" json:"text"`

	CreatedAt time.Time `json:"createdAt"`
}

// ActiveChat is the per-user rollup the admin console lists, refreshed on
// every message.
type ActiveChat struct {
	UserID        string    `gorm:"primaryKey;size:128" json:"userId"`
	UserName      string    `gorm:"size:255" json:"userName"`
	LastMessage   string    `gorm:"size:512" json:"lastMessage"`
	LastTimestamp time.Time `gorm:"index" json:"lastTimestamp"`
}
