package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rastbanken-backend/internal/model"
)

// Store is the persistence contract consumed by the ledger: four independent
// record collections, each addressed by id. No filtering beyond by-id lookup;
// all cross-record queries happen against the ledger's in-memory mirror.
type Store interface {
	Classes(ctx context.Context) ([]model.Class, error)
	ClassByID(ctx context.Context, id string) (*model.Class, error)
	PutClass(ctx context.Context, c *model.Class) error
	DeleteClass(ctx context.Context, id string) error

	Students(ctx context.Context) ([]model.Student, error)
	StudentByID(ctx context.Context, id string) (*model.Student, error)
	PutStudent(ctx context.Context, s *model.Student) error
	DeleteStudent(ctx context.Context, id string) error

	Equipment(ctx context.Context) ([]model.Equipment, error)
	EquipmentByID(ctx context.Context, id string) (*model.Equipment, error)
	PutEquipment(ctx context.Context, e *model.Equipment) error
	DeleteEquipment(ctx context.Context, id string) error

	Loans(ctx context.Context) ([]model.Loan, error)
	LoanByID(ctx context.Context, id string) (*model.Loan, error)
	PutLoan(ctx context.Context, l *model.Loan) error
	DeleteLoan(ctx context.Context, id string) error

	// Reset wipes all four collections. Administrative reset only.
	Reset(ctx context.Context) error

	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB { return s.db }

// --- Classes ---

func (s *gormStore) Classes(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

func (s *gormStore) ClassByID(ctx context.Context, id string) (*model.Class, error) {
	var c model.Class
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) PutClass(ctx context.Context, c *model.Class) error {
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *gormStore) DeleteClass(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Class{}, "id = ?", id).Error
}

// --- Students ---

func (s *gormStore) Students(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *gormStore) StudentByID(ctx context.Context, id string) (*model.Student, error) {
	var st model.Student
	if err := s.db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *gormStore) PutStudent(ctx context.Context, st *model.Student) error {
	return s.db.WithContext(ctx).Save(st).Error
}

func (s *gormStore) DeleteStudent(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Student{}, "id = ?", id).Error
}

// --- Equipment ---

func (s *gormStore) Equipment(ctx context.Context) ([]model.Equipment, error) {
	var items []model.Equipment
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return items, nil
}

func (s *gormStore) EquipmentByID(ctx context.Context, id string) (*model.Equipment, error) {
	var e model.Equipment
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *gormStore) PutEquipment(ctx context.Context, e *model.Equipment) error {
	return s.db.WithContext(ctx).Save(e).Error
}

func (s *gormStore) DeleteEquipment(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Equipment{}, "id = ?", id).Error
}

// --- Loans ---

func (s *gormStore) Loans(ctx context.Context) ([]model.Loan, error) {
	var loans []model.Loan
	if err := s.db.WithContext(ctx).Order("borrowed_at, id").Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

func (s *gormStore) LoanByID(ctx context.Context, id string) (*model.Loan, error) {
	var l model.Loan
	if err := s.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *gormStore) PutLoan(ctx context.Context, l *model.Loan) error {
	return s.db.WithContext(ctx).Save(l).Error
}

func (s *gormStore) DeleteLoan(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&model.Loan{}, "id = ?", id).Error
}

// --- Reset ---

func (s *gormStore) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.Loan{}, &model.Student{}, &model.Class{}, &model.Equipment{}} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
		return nil
	})
}
