package models

import "time"

const (
	NotifBookingAccepted = "booking_accepted"
	NotifBookingRejected = "booking_rejected"
	NotifChatMessage     = "chat_message"
)

type Notification struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	UserID  string `gorm:"index;size:128" json:"userId"`
	Title   string `gorm:"size:255" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Type    string `gorm:"size:32" json:"type"`

	// Bulk-set when the recipient opens their notification panel; there is no
	// per-item read action.
	IsRead bool `gorm:"column:is_read" json:"read"`

	CreatedAt time.Time `json:"createdAt"`
}
