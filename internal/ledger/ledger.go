package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rastbanken-backend/internal/model"
	"rastbanken-backend/internal/store"
)

var (
	// ErrNotFound is returned when a referenced class, student, equipment
	// item or loan does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when a loan is attempted against an
	// equipment item with no units left.
	ErrUnavailable = errors.New("equipment unavailable")

	// ErrInvalidQuantity is returned when a capacity change would drop
	// total quantity below the number of outstanding loans.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrStorage wraps failures of the persistent store.
	ErrStorage = errors.New("storage failure")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// EquipmentView is an equipment item together with its derived availability.
type EquipmentView struct {
	model.Equipment
	Available int `json:"available"`
}

// Ledger owns the in-memory mirror of classes, students, equipment and loans
// and enforces the consistency rules between them. Every mutation persists to
// the store before touching the mirror, so memory never claims state the
// store has rejected.
//
// Availability is never stored or cached: it is recomputed from the live loan
// set on every read. A single mutex serializes all operations, which is the
// whole concurrency story for a one-screen kiosk.
type Ledger struct {
	mu    sync.Mutex
	store store.Store

	classes   map[string]model.Class
	students  map[string]model.Student
	equipment map[string]model.Equipment
	loans     map[string]model.Loan
}

// New creates a Ledger over the given store. Call Load before use.
func New(s store.Store) *Ledger {
	return &Ledger{
		store:     s,
		classes:   make(map[string]model.Class),
		students:  make(map[string]model.Student),
		equipment: make(map[string]model.Equipment),
		loans:     make(map[string]model.Loan),
	}
}

// Load mirrors all four collections from the store and then repairs any
// orphans a crash mid-cascade may have left behind: loans whose student is
// gone, and students (plus their loans) whose class is gone.
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	classes, err := l.store.Classes(ctx)
	if err != nil {
		return storageErr("load classes", err)
	}
	students, err := l.store.Students(ctx)
	if err != nil {
		return storageErr("load students", err)
	}
	equipment, err := l.store.Equipment(ctx)
	if err != nil {
		return storageErr("load equipment", err)
	}
	loans, err := l.store.Loans(ctx)
	if err != nil {
		return storageErr("load loans", err)
	}

	l.classes = make(map[string]model.Class, len(classes))
	for _, c := range classes {
		l.classes[c.ID] = c
	}
	l.students = make(map[string]model.Student, len(students))
	for _, s := range students {
		l.students[s.ID] = s
	}
	l.equipment = make(map[string]model.Equipment, len(equipment))
	for _, e := range equipment {
		l.equipment[e.ID] = e
	}
	l.loans = make(map[string]model.Loan, len(loans))
	for _, lo := range loans {
		l.loans[lo.ID] = lo
	}

	return l.repairOrphansLocked(ctx)
}

// repairOrphansLocked deletes records that reference a missing parent.
// Students without a class go first (taking their loans with them), then any
// remaining loans without a student.
func (l *Ledger) repairOrphansLocked(ctx context.Context) error {
	for id, s := range l.students {
		if _, ok := l.classes[s.ClassID]; ok {
			continue
		}
		log.Printf("[WARN] ledger: student %s references missing class %s, removing", id, s.ClassID)
		for loanID, lo := range l.loans {
			if lo.StudentID != id {
				continue
			}
			if err := l.store.DeleteLoan(ctx, loanID); err != nil {
				return storageErr("repair delete loan", err)
			}
			delete(l.loans, loanID)
		}
		if err := l.store.DeleteStudent(ctx, id); err != nil {
			return storageErr("repair delete student", err)
		}
		delete(l.students, id)
	}

	for loanID, lo := range l.loans {
		if _, ok := l.students[lo.StudentID]; ok {
			continue
		}
		log.Printf("[WARN] ledger: loan %s references missing student %s, removing", loanID, lo.StudentID)
		if err := l.store.DeleteLoan(ctx, loanID); err != nil {
			return storageErr("repair delete loan", err)
		}
		delete(l.loans, loanID)
	}
	return nil
}

// --- Reads ---

// Classes returns all classes, oldest first.
func (l *Ledger) Classes() []model.Class {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Class, 0, len(l.classes))
	for _, c := range l.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Students returns all students, oldest first.
func (l *Ledger) Students() []model.Student {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Student, 0, len(l.students))
	for _, s := range l.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ActiveLoans returns all outstanding loans, oldest first.
func (l *Ledger) ActiveLoans() []model.Loan {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Loan, 0, len(l.loans))
	for _, lo := range l.loans {
		out = append(out, lo)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BorrowedAt.Equal(out[j].BorrowedAt) {
			return out[i].BorrowedAt.Before(out[j].BorrowedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AvailableEquipment returns every equipment item with its availability
// projected from the live loan set.
func (l *Ledger) AvailableEquipment() []EquipmentView {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EquipmentView, 0, len(l.equipment))
	for _, e := range l.equipment {
		out = append(out, EquipmentView{Equipment: e, Available: l.availableLocked(e)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (l *Ledger) loanCountLocked(equipmentID string) int {
	n := 0
	for _, lo := range l.loans {
		if lo.EquipmentID == equipmentID {
			n++
		}
	}
	return n
}

func (l *Ledger) availableLocked(e model.Equipment) int {
	available := e.TotalQuantity - l.loanCountLocked(e.ID)
	if available < 0 {
		return 0
	}
	return available
}

// --- Mutations ---

// CreateLoan checks out one unit of an equipment item to a student. The loan
// carries denormalized student/equipment/class names snapshotted now.
func (l *Ledger) CreateLoan(ctx context.Context, studentID, equipmentID string) (*model.Loan, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	student, ok := l.students[studentID]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", studentID, ErrNotFound)
	}
	equipment, ok := l.equipment[equipmentID]
	if !ok {
		return nil, fmt.Errorf("equipment %s: %w", equipmentID, ErrNotFound)
	}
	class, ok := l.classes[student.ClassID]
	if !ok {
		return nil, fmt.Errorf("class %s: %w", student.ClassID, ErrNotFound)
	}
	if l.availableLocked(equipment) <= 0 {
		return nil, fmt.Errorf("equipment %s: %w", equipmentID, ErrUnavailable)
	}

	loan := model.Loan{
		ID:            uuid.NewString(),
		StudentID:     studentID,
		EquipmentID:   equipmentID,
		BorrowedAt:    time.Now().UTC(),
		StudentName:   student.Name,
		EquipmentName: equipment.Name,
		ClassName:     class.Name,
	}
	if err := l.store.PutLoan(ctx, &loan); err != nil {
		return nil, storageErr("put loan", err)
	}
	l.loans[loan.ID] = loan
	log.Printf("[INFO] ledger: loan %s created (%s -> %s)", loan.ID, loan.StudentName, loan.EquipmentName)
	return &loan, nil
}

// ReturnLoan deletes the loan record; the unit becomes available again by
// virtue of no longer being counted.
func (l *Ledger) ReturnLoan(ctx context.Context, loanID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	loan, ok := l.loans[loanID]
	if !ok {
		return fmt.Errorf("loan %s: %w", loanID, ErrNotFound)
	}
	if err := l.store.DeleteLoan(ctx, loanID); err != nil {
		return storageErr("delete loan", err)
	}
	delete(l.loans, loanID)
	log.Printf("[INFO] ledger: loan %s returned (%s)", loanID, loan.EquipmentName)
	return nil
}

// AddClass creates a class with the next palette color.
func (l *Ledger) AddClass(ctx context.Context, name string) (*model.Class, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	class := model.Class{
		ID:        uuid.NewString(),
		Name:      name,
		ColorCode: NextColor(len(l.classes)),
		CreatedAt: time.Now().UTC(),
	}
	if err := l.store.PutClass(ctx, &class); err != nil {
		return nil, storageErr("put class", err)
	}
	l.classes[class.ID] = class
	return &class, nil
}

// AddStudent creates a student in an existing class. Name sanitation happens
// at the API boundary, not here.
func (l *Ledger) AddStudent(ctx context.Context, name, classID string) (*model.Student, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.classes[classID]; !ok {
		return nil, fmt.Errorf("class %s: %w", classID, ErrNotFound)
	}
	student := model.Student{
		ID:        uuid.NewString(),
		Name:      name,
		ClassID:   classID,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.store.PutStudent(ctx, &student); err != nil {
		return nil, storageErr("put student", err)
	}
	l.students[student.ID] = student
	return &student, nil
}

// AddEquipment creates an equipment item. With no loans yet, availability
// equals the full quantity.
func (l *Ledger) AddEquipment(ctx context.Context, name, category string, quantity int, imageURL string) (*EquipmentView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity < 0 {
		return nil, fmt.Errorf("quantity %d: %w", quantity, ErrInvalidQuantity)
	}
	equipment := model.Equipment{
		ID:            uuid.NewString(),
		Name:          name,
		Category:      category,
		TotalQuantity: quantity,
		ImageURL:      imageURL,
		CreatedAt:     time.Now().UTC(),
	}
	if err := l.store.PutEquipment(ctx, &equipment); err != nil {
		return nil, storageErr("put equipment", err)
	}
	l.equipment[equipment.ID] = equipment
	return &EquipmentView{Equipment: equipment, Available: quantity}, nil
}

// DeleteStudent removes a student and every loan they hold. The steps are
// sequential store calls, so a crash partway can strand loans; Load repairs
// that on the next start.
func (l *Ledger) DeleteStudent(ctx context.Context, studentID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.students[studentID]; !ok {
		return fmt.Errorf("student %s: %w", studentID, ErrNotFound)
	}
	for loanID, lo := range l.loans {
		if lo.StudentID != studentID {
			continue
		}
		if err := l.store.DeleteLoan(ctx, loanID); err != nil {
			return storageErr("delete loan", err)
		}
		delete(l.loans, loanID)
	}
	if err := l.store.DeleteStudent(ctx, studentID); err != nil {
		return storageErr("delete student", err)
	}
	delete(l.students, studentID)
	log.Printf("[INFO] ledger: student %s deleted", studentID)
	return nil
}

// DeleteClass cascade-deletes the class, its students and their loans,
// children first so an interruption never leaves a child referencing a
// deleted parent.
func (l *Ledger) DeleteClass(ctx context.Context, classID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.classes[classID]; !ok {
		return fmt.Errorf("class %s: %w", classID, ErrNotFound)
	}

	studentIDs := make(map[string]bool)
	for id, s := range l.students {
		if s.ClassID == classID {
			studentIDs[id] = true
		}
	}

	for loanID, lo := range l.loans {
		if !studentIDs[lo.StudentID] {
			continue
		}
		if err := l.store.DeleteLoan(ctx, loanID); err != nil {
			return storageErr("delete loan", err)
		}
		delete(l.loans, loanID)
	}
	for id := range studentIDs {
		if err := l.store.DeleteStudent(ctx, id); err != nil {
			return storageErr("delete student", err)
		}
		delete(l.students, id)
	}
	if err := l.store.DeleteClass(ctx, classID); err != nil {
		return storageErr("delete class", err)
	}
	delete(l.classes, classID)
	log.Printf("[INFO] ledger: class %s deleted with %d students", classID, len(studentIDs))
	return nil
}

// DeleteEquipment removes an equipment item unconditionally. Outstanding
// loans against it are kept: their denormalized names keep them displayable,
// they can still be returned, and once the item is gone they no longer count
// toward anything.
func (l *Ledger) DeleteEquipment(ctx context.Context, equipmentID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.equipment[equipmentID]; !ok {
		return fmt.Errorf("equipment %s: %w", equipmentID, ErrNotFound)
	}
	if err := l.store.DeleteEquipment(ctx, equipmentID); err != nil {
		return storageErr("delete equipment", err)
	}
	delete(l.equipment, equipmentID)
	if n := l.loanCountLocked(equipmentID); n > 0 {
		log.Printf("[WARN] ledger: equipment %s deleted with %d outstanding loans", equipmentID, n)
	}
	return nil
}

// UpdateEquipment changes an item's total quantity. The new total may not
// drop below the number of units currently out on loan.
func (l *Ledger) UpdateEquipment(ctx context.Context, equipmentID string, newTotalQuantity int) (*EquipmentView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	equipment, ok := l.equipment[equipmentID]
	if !ok {
		return nil, fmt.Errorf("equipment %s: %w", equipmentID, ErrNotFound)
	}
	borrowed := l.loanCountLocked(equipmentID)
	if newTotalQuantity < borrowed {
		return nil, fmt.Errorf("quantity %d below %d outstanding loans: %w", newTotalQuantity, borrowed, ErrInvalidQuantity)
	}

	equipment.TotalQuantity = newTotalQuantity
	if err := l.store.PutEquipment(ctx, &equipment); err != nil {
		return nil, storageErr("put equipment", err)
	}
	l.equipment[equipmentID] = equipment
	return &EquipmentView{Equipment: equipment, Available: l.availableLocked(equipment)}, nil
}

// Reset wipes everything, store first.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Reset(ctx); err != nil {
		return storageErr("reset", err)
	}
	l.classes = make(map[string]model.Class)
	l.students = make(map[string]model.Student)
	l.equipment = make(map[string]model.Equipment)
	l.loans = make(map[string]model.Loan)
	log.Printf("[INFO] ledger: all data reset")
	return nil
}
