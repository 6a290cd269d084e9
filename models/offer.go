package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer is a promotional discount. A one-time offer can be redeemed once per
// user (tracked in UserProfile.Claims); otherwise it can be claimed again and
// again while its window is open. Absent EndDate means unlimited duration.
type Offer struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	MediaURL  string `gorm:"column:media_url;size:512" json:"mediaUrl,omitempty"`
	MediaType string `gorm:"size:32" json:"mediaType,omitempty"`

	DiscountPercent int    `json:"discountPercent"`
	CTAText         string `gorm:"column:cta_text;size:100" json:"ctaText,omitempty"`
	IsOneTime       bool   `json:"isOneTime"`

	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
