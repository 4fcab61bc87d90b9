package model

import "time"

// Student always belongs to exactly one class. Deleting the class
// cascade-deletes its students in the ledger, not via DB constraints,
// so the ledger stays the single authority over referential cleanup.
type Student struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	ClassID   string    `gorm:"size:64;not null;index" json:"classId"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
