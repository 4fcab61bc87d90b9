package model

import "time"

// Loan records that one unit of an equipment item is currently checked out
// to a student. Returning deletes the record; there is no loan history.
//
// StudentName, EquipmentName and ClassName are denormalized snapshots taken
// at creation time so the loan stays displayable even after the referenced
// entities are gone.
type Loan struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	StudentID     string    `gorm:"size:64;not null;index" json:"studentId"`
	EquipmentID   string    `gorm:"size:64;not null;index" json:"equipmentId"`
	BorrowedAt    time.Time `gorm:"not null" json:"borrowedAt"`
	StudentName   string    `gorm:"size:128;not null" json:"studentName"`
	EquipmentName string    `gorm:"size:128;not null" json:"equipmentName"`
	ClassName     string    `gorm:"size:64;not null" json:"className"`
}
