package models

import "time"

// DiscountSession is the explicit stand-in for the "active discount" a user
// carries between claiming an offer and creating a booking. One row per uid;
// cleared when a booking is created.
type DiscountSession struct {
	UID             string    `gorm:"primaryKey;size:128" json:"uid"`
	OfferID         string    `gorm:"size:64" json:"offerId"`
	DiscountPercent int       `json:"discountPercent"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
