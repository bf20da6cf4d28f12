package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/attendance"
	"github.com/Yazi0/SmartTuitionManager/core/class"
	"github.com/Yazi0/SmartTuitionManager/core/payment"
	"github.com/Yazi0/SmartTuitionManager/core/student"
	"github.com/Yazi0/SmartTuitionManager/core/user"
	emailsvc "github.com/Yazi0/SmartTuitionManager/services/email"
	qrsvc "github.com/Yazi0/SmartTuitionManager/services/qr"
	smssvc "github.com/Yazi0/SmartTuitionManager/services/sms"
	dummydb "github.com/Yazi0/SmartTuitionManager/storage/database/dummy"
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
}

type testEnv struct {
	server Server

	usrSvc        *user.Service
	studentSvc    *student.Service
	classSvc      *class.Service
	attendanceSvc *attendance.Service
	paymentSvc    *payment.Service
	sms           *smssvc.ServiceMock
}

type testLogger struct{ std *log.Logger }

func (l testLogger) Debug(msg string, args ...interface{}) {}
func (l testLogger) Info(msg string, args ...interface{})  {}
func (l testLogger) Warn(msg string, args ...interface{})  {}
func (l testLogger) Error(msg string, args ...interface{}) {}
func (l testLogger) Fatal(msg string, args ...interface{}) { l.std.Fatal(msg) }

func testConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		AppName:   "SmartTuition",
		SecretKey: []byte("secret"),
		MediaRoot: "media",
		MediaURL:  "/media",
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	conf := testConfig()
	logger := testLogger{log.New(io.Discard, "", 0)}
	sms := smssvc.NewServiceMock()
	mail := emailsvc.NewConsoleServiceMock(conf)

	usrSvc := user.NewService(dummydb.NewUserRepository(db))
	studentSvc := student.NewService(dummydb.NewStudentRepository(db), qrsvc.NewDummyService(), logger)
	classSvc := class.NewService(dummydb.NewClassRepository(db))
	attendanceSvc := attendance.NewService(dummydb.NewAttendanceRepository(db), studentSvc, sms, logger)
	paymentSvc := payment.NewService(dummydb.NewPaymentRepository(db), studentSvc, sms, mail, logger)

	server := NewServer(
		&Options{
			DisableReqLogs: true,
			Conf:           conf,
			Logger:         logger,
			UserSvc:        usrSvc,
			StudentSvc:     studentSvc,
			ClassSvc:       classSvc,
			AttendanceSvc:  attendanceSvc,
			PaymentSvc:     paymentSvc,
		},
		make(chan os.Signal, 1),
	)
	return &testEnv{
		server:        server,
		usrSvc:        usrSvc,
		studentSvc:    studentSvc,
		classSvc:      classSvc,
		attendanceSvc: attendanceSvc,
		paymentSvc:    paymentSvc,
		sms:           sms,
	}
}

func (env *testEnv) createUser(t *testing.T, name, uname, role string) user.User {
	t.Helper()
	usr, err := env.usrSvc.Create(user.NewUser{
		Name:            name,
		Username:        uname,
		Password:        "s3cr3t-pwd",
		PasswordConfirm: "s3cr3t-pwd",
	}, role)
	if err != nil {
		t.Fatalf("creating user failed: %v", err)
	}
	return usr
}

func (env *testEnv) createClass(t *testing.T, name string, fee float64, teacherID *int) class.Class {
	t.Helper()
	cls, err := env.classSvc.Create(class.NewClass{
		Name:        name,
		Subject:     "Mathematics",
		TeacherID:   teacherID,
		FeePerMonth: fee,
		Schedule:    "Mon/Wed/Fri 4-6 PM",
	})
	if err != nil {
		t.Fatalf("creating class failed: %v", err)
	}
	return cls
}

func (env *testEnv) createStudent(t *testing.T, name string, classID *int) student.Student {
	t.Helper()
	st, err := env.studentSvc.Create(student.NewStudent{
		FullName:        name,
		DateOfBirth:     "2010-04-12",
		ParentName:      "Parent of " + name,
		ParentPhone:     "+260971234567",
		Address:         "12 Main St",
		AssignedClassID: classID,
	})
	if err != nil {
		t.Fatalf("enrolling student failed: %v", err)
	}
	return st
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func itoa(i int) string { return strconv.Itoa(i) }

func checkCode(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response body failed: %v; body = %s", err, rec.Body.String())
	}
}
