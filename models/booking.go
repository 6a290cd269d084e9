package models

import (
	"time"
)

// Booking status state machine:
// pending -> accepted -> completed, pending -> rejected.
// rejected and completed are terminal.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
)

type Booking struct {
	// Creation-time-derived id (unix millis as string), kept opaque to clients.
	ID string `gorm:"primaryKey;size:32" json:"id"`

	UserID    string `gorm:"index;size:128" json:"userId"`
	UserName  string `gorm:"size:255" json:"userName"`
	UserEmail string `gorm:"size:150" json:"userEmail"`

	RoomID    uint   `gorm:"index" json:"roomId"`
	RoomTitle string `gorm:"size:255" json:"roomTitle"`

	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`

	TotalGuests int     `json:"totalGuests"`
	Guests      []Guest `gorm:"foreignKey:BookingID" json:"guests"`

	// Discounted nightly rate captured at submission time.
	Price float64 `json:"price"`

	Status          string `gorm:"index;size:16;default:pending" json:"status"`
	RoomNumber      string `gorm:"size:50" json:"roomNumber,omitempty"`
	RejectionReason string `gorm:"size:512" json:"rejectionReason,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"-"`
	ArrivedAt *time.Time `json:"arrivedAt,omitempty"`
	LeftAt    *time.Time `json:"leftAt,omitempty"`
}

// Guest is one entry of a booking's guest registry. The first two guests
// carry full identity (NID + image); additional guests are name + age only.
type Guest struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	BookingID string `gorm:"index;size:32" json:"-"`
	Position  int    `json:"position"`

	LegalName     string `gorm:"size:255" json:"legalName"`
	Age           *int   `json:"age,omitempty"`
	NIDNumber     string `gorm:"column:nid_number;size:17" json:"nidNumber,omitempty"`
	Phone         string `gorm:"size:20" json:"phone,omitempty"`
	GuardianPhone string `gorm:"size:20" json:"guardianPhone,omitempty"`
	NIDImageURL   string `gorm:"column:nid_image_url;size:512" json:"nidImageUrl,omitempty"`
}

func (Guest) TableName() string { return "booking_guests" }
