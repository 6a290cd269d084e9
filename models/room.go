package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	Title       string  `json:"title" gorm:"size:255"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price"`

	// Maximum number of guests a booking for this room may carry.
	Capacity int `json:"capacity" gorm:"column:capacity"`

	ImageURL  string         `json:"imageUrl" gorm:"column:image_url;size:512"`
	Amenities datatypes.JSON `json:"amenities,omitempty"`
}
