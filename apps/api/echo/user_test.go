package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yazi0/SmartTuitionManager/core/user"
)

func Test_userApi_login(t *testing.T) {
	env := newTestEnv(t)
	usr := env.createUser(t, "Boss", "boss", user.RoleOwner)

	inactive := env.createUser(t, "Gone", "gone", user.RoleTeacher)
	isActive := false
	uu := user.UpdateUser{IsActive: &isActive}
	if err := uu.Validate(inactive, env.usrSvc); err != nil {
		t.Fatalf("UpdateUser.Validate() failed: %v", err)
	}
	if _, err := env.usrSvc.Update(inactive.ID, uu); err != nil {
		t.Fatalf("deactivating user failed: %v", err)
	}

	tests := []httpTest{
		{name: "empty payload", body: []byte(`{}`), wantCode: http.StatusBadRequest},
		{name: "unknown user", body: marshallObj(t, LoginRequest{Username: "nobody", Password: "s3cr3t-pwd"}), wantCode: http.StatusBadRequest},
		{name: "wrong password", body: marshallObj(t, LoginRequest{Username: usr.Username, Password: "nope-nope"}), wantCode: http.StatusBadRequest},
		{name: "deactivated account", body: marshallObj(t, LoginRequest{Username: inactive.Username, Password: "s3cr3t-pwd"}), wantCode: http.StatusForbidden},
		{name: "ok", body: marshallObj(t, LoginRequest{Username: usr.Username, Password: "s3cr3t-pwd"}), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			env.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusOK {
				var resp LoginResponse
				decodeBody(t, rec, &resp)
				assert.NotEmpty(t, resp.Token)
			}
		})
	}
}

func Test_userApi_register(t *testing.T) {
	env := newTestEnv(t)

	body := marshallObj(t, user.NewUser{
		Name:            "Jane Banda",
		Username:        "jane_b",
		Email:           "jane@test.zm",
		Password:        "s3cr3t-pwd",
		PasswordConfirm: "s3cr3t-pwd",
	})
	req, rec := newRequest(http.MethodPost, "/v1/users/register", body)
	env.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var usr user.User
	decodeBody(t, rec, &usr)
	assert.Equal(t, user.RoleStudent, usr.Role) // self-registration never grants more

	// duplicate username is a validation error
	req, rec = newRequest(http.MethodPost, "/v1/users/register", body)
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_userApi_me(t *testing.T) {
	env := newTestEnv(t)
	usr := env.createUser(t, "Boss", "boss", user.RoleOwner)

	req, rec := newAuthRequest(http.MethodGet, "/v1/users/me", getToken(t, usr))
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var me user.User
	decodeBody(t, rec, &me)
	assert.Equal(t, usr.ID, me.ID)

	// no token
	req, rec = newRequest(http.MethodGet, "/v1/users/me")
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_userApi_teachers(t *testing.T) {
	env := newTestEnv(t)
	ownerTkn := getToken(t, env.createUser(t, "Boss", "boss", user.RoleOwner))
	teacherTkn := getToken(t, env.createUser(t, "Teach", "teach", user.RoleTeacher))
	studentTkn := getToken(t, env.createUser(t, "Kid", "kiddo", user.RoleStudent))

	newTeacher := marshallObj(t, user.NewUser{
		Name:            "New Teacher",
		Username:        "newteach",
		Password:        "s3cr3t-pwd",
		PasswordConfirm: "s3cr3t-pwd",
	})

	tests := []httpTest{
		{name: "list: owner ok", method: http.MethodGet, token: ownerTkn, wantCode: http.StatusOK},
		{name: "list: teacher forbidden", method: http.MethodGet, token: teacherTkn, wantCode: http.StatusForbidden},
		{name: "list: student forbidden", method: http.MethodGet, token: studentTkn, wantCode: http.StatusForbidden},
		{name: "create: teacher forbidden", method: http.MethodPost, token: teacherTkn, body: newTeacher, wantCode: http.StatusForbidden},
		{name: "create: owner ok", method: http.MethodPost, token: ownerTkn, body: newTeacher, wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, "/v1/users/teachers", tt.token, tt.body)
			env.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)
		})
	}

	// the created account is a teacher
	created, err := env.usrSvc.GetByUsernameOrEmail("newteach")
	assert.NoError(t, err)
	assert.Equal(t, user.RoleTeacher, created.Role)
}
