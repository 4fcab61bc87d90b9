package model

import "time"

// Equipment is a lendable item type with a fixed number of units.
// Availability is never stored; it is derived from the live loan set.
type Equipment struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	Name          string    `gorm:"size:128;not null" json:"name"`
	Category      string    `gorm:"size:64;not null" json:"category"`
	TotalQuantity int       `gorm:"not null" json:"totalQuantity"`
	ImageURL      string    `gorm:"size:256" json:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
