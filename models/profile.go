package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile is keyed by the auth provider's uid. A profile only counts as
// verified once IsComplete is set; until then the client blocks booking and
// offer actions and sends the user through onboarding.
type UserProfile struct {
	UID       string `gorm:"primaryKey;size:128" json:"uid"`
	Email     string `gorm:"size:150" json:"email"`
	LegalName string `gorm:"size:255" json:"legalName"`

	// Stored lowercase; uniqueness is backed by the usernames reverse index.
	Username string `gorm:"uniqueIndex;size:64" json:"username"`

	Phone         string `gorm:"size:20" json:"phone"`
	GuardianPhone string `gorm:"size:20" json:"guardianPhone"`
	NIDNumber     string `gorm:"column:nid_number;size:17" json:"nidNumber"`
	NIDImageURL   string `gorm:"column:nid_image_url;size:512" json:"nidImageUrl"`

	IsComplete bool `json:"isComplete"`
	Age        *int `json:"age,omitempty"`

	// Offer ids already redeemed by this user (JSON array of strings).
	Claims datatypes.JSON `json:"claims,omitempty"`

	// LastUpdated gates the 30-day profile edit lock. It is only bumped by
	// onboarding and by a successful profile update, never by side writes.
	LastUpdated time.Time `json:"lastUpdated"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (UserProfile) TableName() string { return "profiles" }

// UsernameIndex maps a claimed username back to its owner uid.
type UsernameIndex struct {
	Username  string    `gorm:"primaryKey;size:64" json:"username"`
	UID       string    `gorm:"size:128;index" json:"uid"`
	CreatedAt time.Time `json:"-"`
}

func (UsernameIndex) TableName() string { return "usernames" }
