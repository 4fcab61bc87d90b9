package db

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"rastbanken-backend/internal/ledger"
	"rastbanken-backend/internal/model"
)

// SeedClasses populates the classes collection on first start: the preschool
// classes FA-FC followed by 1A-6C, colored round-robin from the palette.
// A non-empty classes collection means the kiosk is already in use and the
// seed is skipped.
func SeedClasses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Class{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var classes []model.Class
	for _, letter := range []string{"A", "B", "C"} {
		name := "F" + letter
		classes = append(classes, model.Class{
			ID:        strings.ToLower(name),
			Name:      name,
			ColorCode: ledger.NextColor(len(classes)),
		})
	}
	for grade := 1; grade <= 6; grade++ {
		for _, letter := range []string{"A", "B", "C"} {
			name := fmt.Sprintf("%d%s", grade, letter)
			classes = append(classes, model.Class{
				ID:        strings.ToLower(name),
				Name:      name,
				ColorCode: ledger.NextColor(len(classes)),
			})
		}
	}

	if err := db.Create(&classes).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d classes", len(classes))
	return nil
}
