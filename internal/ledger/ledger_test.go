package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rastbanken-backend/internal/model"
	"rastbanken-backend/internal/store"
)

// newTestLedger opens a fresh SQLite database in a temp dir and returns a
// loaded ledger over it plus the raw store for direct inspection.
func newTestLedger(t *testing.T) (*Ledger, store.Store) {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&model.Class{}, &model.Student{}, &model.Equipment{}, &model.Loan{}))

	s := store.NewGormStore(testDB)
	l := New(s)
	require.NoError(t, l.Load(context.Background()))
	return l, s
}

// addStudentInClass is a setup shortcut: one class, one student in it.
func addStudentInClass(t *testing.T, l *Ledger, className, studentName string) *model.Student {
	t.Helper()
	ctx := context.Background()
	class, err := l.AddClass(ctx, className)
	require.NoError(t, err)
	student, err := l.AddStudent(ctx, studentName, class.ID)
	require.NoError(t, err)
	return student
}

func availableOf(t *testing.T, l *Ledger, equipmentID string) int {
	t.Helper()
	for _, item := range l.AvailableEquipment() {
		if item.ID == equipmentID {
			return item.Available
		}
	}
	t.Fatalf("equipment %s not found", equipmentID)
	return 0
}

func TestLoanLifecycle(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "4A", "Maja")
	item, err := l.AddEquipment(ctx, "Fotboll", "Sport", 3, "")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Available)

	// Three loans exhaust the stock.
	var loans []*model.Loan
	for i := 0; i < 3; i++ {
		loan, err := l.CreateLoan(ctx, student.ID, item.ID)
		require.NoError(t, err)
		loans = append(loans, loan)
	}
	assert.Equal(t, 0, availableOf(t, l, item.ID))

	// A fourth attempt fails and changes nothing.
	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Len(t, l.ActiveLoans(), 3)
	assert.Equal(t, 0, availableOf(t, l, item.ID))

	// Returning one unit frees exactly one.
	require.NoError(t, l.ReturnLoan(ctx, loans[0].ID))
	assert.Equal(t, 1, availableOf(t, l, item.ID))
}

func TestLoanSnapshotsNames(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "2B", "Elsa")
	item, err := l.AddEquipment(ctx, "Hopprep", "Sport", 2, "")
	require.NoError(t, err)

	loan, err := l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elsa", loan.StudentName)
	assert.Equal(t, "Hopprep", loan.EquipmentName)
	assert.Equal(t, "2B", loan.ClassName)
	assert.False(t, loan.BorrowedAt.IsZero())
}

func TestCreateLoanMissingReferences(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "1A", "Nils")
	item, err := l.AddEquipment(ctx, "Frisbee", "Sport", 1, "")
	require.NoError(t, err)

	_, err = l.CreateLoan(ctx, "missing", item.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.CreateLoan(ctx, student.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, l.ActiveLoans())
	assert.Equal(t, 1, availableOf(t, l, item.ID))
}

func TestReturnLoanNotFound(t *testing.T) {
	l, _ := newTestLedger(t)
	assert.ErrorIs(t, l.ReturnLoan(context.Background(), "missing"), ErrNotFound)
}

func TestCreateThenReturnIsIdempotentOnAvailability(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "3C", "Ali")
	item, err := l.AddEquipment(ctx, "Kubb", "Sport", 5, "")
	require.NoError(t, err)

	before := availableOf(t, l, item.ID)
	loan, err := l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, before-1, availableOf(t, l, item.ID))
	require.NoError(t, l.ReturnLoan(ctx, loan.ID))
	assert.Equal(t, before, availableOf(t, l, item.ID))
}

func TestDeleteStudentReturnsLoans(t *testing.T) {
	l, s := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "5A", "Vera")
	item, err := l.AddEquipment(ctx, "Basketboll", "Sport", 2, "")
	require.NoError(t, err)

	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, availableOf(t, l, item.ID))

	require.NoError(t, l.DeleteStudent(ctx, student.ID))

	assert.Empty(t, l.Students())
	assert.Empty(t, l.ActiveLoans())
	assert.Equal(t, 2, availableOf(t, l, item.ID))

	// The store agrees with the mirror.
	storedLoans, err := s.Loans(ctx)
	require.NoError(t, err)
	assert.Empty(t, storedLoans)
}

func TestDeleteClassCascades(t *testing.T) {
	l, s := newTestLedger(t)
	ctx := context.Background()

	class, err := l.AddClass(ctx, "4A")
	require.NoError(t, err)
	other, err := l.AddClass(ctx, "4B")
	require.NoError(t, err)

	s1, err := l.AddStudent(ctx, "S1", class.ID)
	require.NoError(t, err)
	_, err = l.AddStudent(ctx, "S2", class.ID)
	require.NoError(t, err)
	outsider, err := l.AddStudent(ctx, "S3", other.ID)
	require.NoError(t, err)

	item, err := l.AddEquipment(ctx, "Hopprep", "Sport", 2, "")
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, s1.ID, item.ID)
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, outsider.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, availableOf(t, l, item.ID))

	require.NoError(t, l.DeleteClass(ctx, class.ID))

	// S1, S2 and S1's loan are gone; the other class is untouched.
	students := l.Students()
	require.Len(t, students, 1)
	assert.Equal(t, outsider.ID, students[0].ID)
	require.Len(t, l.ActiveLoans(), 1)
	assert.Equal(t, 1, availableOf(t, l, item.ID))

	storedStudents, err := s.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, storedStudents, 1)
	storedClasses, err := s.Classes(ctx)
	require.NoError(t, err)
	assert.Len(t, storedClasses, 1)
}

func TestDeleteClassNotFound(t *testing.T) {
	l, _ := newTestLedger(t)
	assert.ErrorIs(t, l.DeleteClass(context.Background(), "missing"), ErrNotFound)
}

func TestUpdateEquipmentQuantity(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "6B", "Omar")
	item, err := l.AddEquipment(ctx, "Bandyklubba", "Sport", 5, "")
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, availableOf(t, l, item.ID))

	// Reducing below the two outstanding loans is rejected and changes nothing.
	_, err = l.UpdateEquipment(ctx, item.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 3, availableOf(t, l, item.ID))

	// Reducing to exactly the outstanding count leaves zero available.
	updated, err := l.UpdateEquipment(ctx, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalQuantity)
	assert.Equal(t, 0, updated.Available)

	_, err = l.UpdateEquipment(ctx, "missing", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEquipmentKeepsOrphanLoans(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "1B", "Leo")
	item, err := l.AddEquipment(ctx, "Rockring", "Sport", 1, "")
	require.NoError(t, err)
	loan, err := l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)

	require.NoError(t, l.DeleteEquipment(ctx, item.ID))
	assert.Empty(t, l.AvailableEquipment())

	// The loan survives on its snapshot fields and can still be returned.
	loans := l.ActiveLoans()
	require.Len(t, loans, 1)
	assert.Equal(t, "Rockring", loans[0].EquipmentName)
	require.NoError(t, l.ReturnLoan(ctx, loan.ID))
	assert.Empty(t, l.ActiveLoans())
}

func TestAvailabilityInvariants(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "2A", "Ida")
	item, err := l.AddEquipment(ctx, "Volleyboll", "Sport", 2, "")
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)

	for _, view := range l.AvailableEquipment() {
		assert.GreaterOrEqual(t, view.Available, 0)
		assert.LessOrEqual(t, view.Available, view.TotalQuantity)

		outstanding := 0
		for _, loan := range l.ActiveLoans() {
			if loan.EquipmentID == view.ID {
				outstanding++
			}
		}
		assert.Equal(t, view.TotalQuantity-outstanding, view.Available)
	}
}

func TestClassColorRotation(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	names := []string{"FA", "FB", "FC", "1A", "1B", "1C", "2A", "2B", "2C"}
	for i, name := range names {
		class, err := l.AddClass(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, ClassColors[i%len(ClassColors)], class.ColorCode, "class %s", name)
	}
}

func TestLoadRepairsOrphans(t *testing.T) {
	l, s := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "3A", "Noa")
	item, err := l.AddEquipment(ctx, "Styltor", "Sport", 2, "")
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)

	// Simulate a crash mid-cascade: write orphans straight to the store.
	require.NoError(t, s.PutStudent(ctx, &model.Student{ID: "orphan-student", Name: "X", ClassID: "gone"}))
	require.NoError(t, s.PutLoan(ctx, &model.Loan{
		ID: "orphan-loan", StudentID: "orphan-student", EquipmentID: item.ID,
		StudentName: "X", EquipmentName: "Styltor", ClassName: "gone",
	}))
	require.NoError(t, s.PutLoan(ctx, &model.Loan{
		ID: "dangling-loan", StudentID: "never-existed", EquipmentID: item.ID,
		StudentName: "Y", EquipmentName: "Styltor", ClassName: "gone",
	}))

	// A fresh ledger over the same store repairs on load.
	reloaded := New(s)
	require.NoError(t, reloaded.Load(ctx))

	assert.Len(t, reloaded.Students(), 1)
	assert.Len(t, reloaded.ActiveLoans(), 1)
	assert.Equal(t, 1, availableOf(t, reloaded, item.ID))

	storedLoans, err := s.Loans(ctx)
	require.NoError(t, err)
	assert.Len(t, storedLoans, 1)
	storedStudents, err := s.Students(ctx)
	require.NoError(t, err)
	assert.Len(t, storedStudents, 1)
}

func TestStateSurvivesReload(t *testing.T) {
	l, s := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "5C", "Tove")
	item, err := l.AddEquipment(ctx, "Fotboll", "Sport", 3, "")
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)

	reloaded := New(s)
	require.NoError(t, reloaded.Load(ctx))

	assert.Len(t, reloaded.Classes(), 1)
	assert.Len(t, reloaded.Students(), 1)
	assert.Len(t, reloaded.ActiveLoans(), 1)
	assert.Equal(t, 2, availableOf(t, reloaded, item.ID))
}

func TestReset(t *testing.T) {
	l, s := newTestLedger(t)
	ctx := context.Background()

	student := addStudentInClass(t, l, "6A", "Siri")
	item, err := l.AddEquipment(ctx, "Kritor", "Lek", 4, "")
	require.NoError(t, err)
	_, err = l.CreateLoan(ctx, student.ID, item.ID)
	require.NoError(t, err)

	require.NoError(t, l.Reset(ctx))

	assert.Empty(t, l.Classes())
	assert.Empty(t, l.Students())
	assert.Empty(t, l.AvailableEquipment())
	assert.Empty(t, l.ActiveLoans())

	for name, count := range map[string]func() (int, error){
		"classes": func() (int, error) { v, err := s.Classes(ctx); return len(v), err },
		"students": func() (int, error) { v, err := s.Students(ctx); return len(v), err },
		"equipment": func() (int, error) { v, err := s.Equipment(ctx); return len(v), err },
		"loans": func() (int, error) { v, err := s.Loans(ctx); return len(v), err },
	} {
		n, err := count()
		require.NoError(t, err, name)
		assert.Zero(t, n, "%s should be empty after reset", name)
	}
}

func TestAddStudentRequiresClass(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.AddStudent(context.Background(), "Maja", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
