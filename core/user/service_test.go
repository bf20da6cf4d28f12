package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/user"
	dummydb "github.com/Yazi0/SmartTuitionManager/storage/database/dummy"
)

func setup(t *testing.T) *user.Service {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return user.NewService(dummydb.NewUserRepository(db))
}

func TestService_Create(t *testing.T) {
	svc := setup(t)

	nu := user.NewUser{
		Name:            "Jane Banda",
		Username:        "jane_b",
		Email:           "jane@test.zm",
		Password:        "s3cr3t-pwd",
		PasswordConfirm: "s3cr3t-pwd",
	}
	if err := nu.Validate(svc); err != nil {
		t.Fatalf("NewUser.Validate() failed: %v", err)
	}
	usr, err := svc.Create(nu, user.RoleTeacher)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	assert.Equal(t, user.RoleTeacher, usr.Role)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("s3cr3t-pwd"))
	assert.Error(t, usr.CheckPassword("wrong"))

	// username and email must stay unique
	for _, dup := range []user.NewUser{
		{Name: "Other", Username: "jane_b", Password: "s3cr3t-pwd", PasswordConfirm: "s3cr3t-pwd"},
		{Name: "Other", Username: "other", Email: "jane@test.zm", Password: "s3cr3t-pwd", PasswordConfirm: "s3cr3t-pwd"},
	} {
		err := dup.Validate(svc)
		assert.IsType(t, &core.ValidationError{}, err)
	}
}

func TestService_Authentication_lookups(t *testing.T) {
	svc := setup(t)

	nu := user.NewUser{
		Name:            "Jane Banda",
		Username:        "jane_b",
		Email:           "jane@test.zm",
		Password:        "s3cr3t-pwd",
		PasswordConfirm: "s3cr3t-pwd",
	}
	if err := nu.Validate(svc); err != nil {
		t.Fatalf("NewUser.Validate() failed: %v", err)
	}
	created, err := svc.Create(nu, user.RoleOwner)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	byUname, err := svc.GetByUsernameOrEmail("Jane_B") // case-insensitive
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byUname.ID)

	byEmail, err := svc.GetByUsernameOrEmail("jane@test.zm")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = svc.GetByUsernameOrEmail("nobody")
	assert.Equal(t, user.ErrNotFound, err)

	owners, err := svc.QueryByRole(user.RoleOwner)
	assert.NoError(t, err)
	assert.Len(t, owners, 1)
}

func TestService_Update_keepsRole(t *testing.T) {
	svc := setup(t)

	nu := user.NewUser{
		Name:            "Jane Banda",
		Username:        "jane_b",
		Password:        "s3cr3t-pwd",
		PasswordConfirm: "s3cr3t-pwd",
	}
	if err := nu.Validate(svc); err != nil {
		t.Fatalf("NewUser.Validate() failed: %v", err)
	}
	usr, err := svc.Create(nu, user.RoleTeacher)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	uu := user.UpdateUser{Name: "Jane M Banda"}
	if err := uu.Validate(usr, svc); err != nil {
		t.Fatalf("UpdateUser.Validate() failed: %v", err)
	}
	updated, err := svc.Update(usr.ID, uu)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	assert.Equal(t, "Jane M Banda", updated.Name)
	assert.Equal(t, user.RoleTeacher, updated.Role)
	assert.NoError(t, updated.CheckPassword("s3cr3t-pwd"))
}
