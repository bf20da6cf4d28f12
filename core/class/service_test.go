package class_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yazi0/SmartTuitionManager/core/class"
	dummydb "github.com/Yazi0/SmartTuitionManager/storage/database/dummy"
)

func setup(t *testing.T) *class.Service {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return class.NewService(dummydb.NewClassRepository(db))
}

func createClass(t *testing.T, svc *class.Service) class.Class {
	t.Helper()
	cls, err := svc.Create(class.NewClass{
		Name:        "Grade 10 Math",
		Subject:     "Mathematics",
		FeePerMonth: 3000,
		Schedule:    "Mon/Wed/Fri 4-6 PM",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return cls
}

func TestService_Update_partial(t *testing.T) {
	svc := setup(t)
	cls := createClass(t, svc)

	// setting a single field leaves everything else as it was
	fee := 3500.0
	updated, err := svc.Update(cls.ID, class.UpdateClass{FeePerMonth: &fee})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	assert.Equal(t, 3500.0, updated.FeePerMonth)
	assert.Equal(t, cls.Name, updated.Name)
	assert.Equal(t, cls.Subject, updated.Subject)
	assert.Equal(t, cls.Schedule, updated.Schedule)

	// an empty update is a no-op save
	updated, err = svc.Update(cls.ID, class.UpdateClass{})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	assert.Equal(t, 3500.0, updated.FeePerMonth)
	assert.Equal(t, cls.Name, updated.Name)

	_, err = svc.Update(999, class.UpdateClass{})
	assert.Equal(t, class.ErrNotFound, err)
}
