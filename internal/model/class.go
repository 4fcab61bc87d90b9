package model

import "time"

// Class represents a school class (grade plus section, e.g. "4A").
// ColorCode is assigned round-robin from the shared palette at creation time.
type Class struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	ColorCode string    `gorm:"size:16;not null" json:"colorCode"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
