package student_test

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yazi0/SmartTuitionManager/core/student"
	qrsvc "github.com/Yazi0/SmartTuitionManager/services/qr"
	dummydb "github.com/Yazi0/SmartTuitionManager/storage/database/dummy"
)

type testLogger struct{ std *log.Logger }

func (l testLogger) Debug(msg string, args ...interface{}) {}
func (l testLogger) Info(msg string, args ...interface{})  {}
func (l testLogger) Warn(msg string, args ...interface{})  {}
func (l testLogger) Error(msg string, args ...interface{}) {}
func (l testLogger) Fatal(msg string, args ...interface{}) { l.std.Fatal(msg) }

func setup(t *testing.T) *student.Service {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	logger := testLogger{log.New(io.Discard, "", 0)}
	return student.NewService(dummydb.NewStudentRepository(db), qrsvc.NewDummyService(), logger)
}

func createStudent(t *testing.T, svc *student.Service) student.Student {
	t.Helper()
	st, err := svc.Create(student.NewStudent{
		FullName:    "Jane Banda",
		DateOfBirth: "2010-04-12",
		ParentName:  "Mary Banda",
		ParentPhone: "+260971234567",
		Address:     "12 Main St",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return st
}

func TestService_Create(t *testing.T) {
	svc := setup(t)

	st := createStudent(t, svc)
	assert.True(t, st.IsActive)
	assert.NotEmpty(t, st.QRCodeURL)
	assert.Equal(t, "2010-04-12", st.DateOfBirth.Format("2006-01-02"))

	_, err := svc.Create(student.NewStudent{FullName: "Bad Date", DateOfBirth: "12/04/2010"})
	assert.Error(t, err)
}

func TestService_Update_partial(t *testing.T) {
	svc := setup(t)
	st := createStudent(t, svc)

	// setting a single field leaves everything else as it was
	isActive := false
	updated, err := svc.Update(st.ID, student.UpdateStudent{IsActive: &isActive})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	assert.False(t, updated.IsActive)
	assert.Equal(t, st.FullName, updated.FullName)
	assert.Equal(t, st.DateOfBirth, updated.DateOfBirth)
	assert.Equal(t, st.ParentPhone, updated.ParentPhone)
	assert.Equal(t, st.Address, updated.Address)

	updated, err = svc.Update(st.ID, student.UpdateStudent{ParentPhone: "+260977654321"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	assert.Equal(t, "+260977654321", updated.ParentPhone)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(999, student.UpdateStudent{ParentPhone: "+260977654321"})
	assert.Equal(t, student.ErrNotFound, err)
}
