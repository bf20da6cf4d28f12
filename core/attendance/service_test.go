package attendance_test

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/attendance"
	"github.com/Yazi0/SmartTuitionManager/core/class"
	"github.com/Yazi0/SmartTuitionManager/core/student"
	"github.com/Yazi0/SmartTuitionManager/core/user"
	qrsvc "github.com/Yazi0/SmartTuitionManager/services/qr"
	smssvc "github.com/Yazi0/SmartTuitionManager/services/sms"
	dummydb "github.com/Yazi0/SmartTuitionManager/storage/database/dummy"
)

type testEnv struct {
	svc        *attendance.Service
	studentSvc *student.Service
	classSvc   *class.Service
	sms        *smssvc.ServiceMock
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	logger := logsvcForTests()
	sms := smssvc.NewServiceMock()
	studentSvc := student.NewService(dummydb.NewStudentRepository(db), qrsvc.NewDummyService(), logger)
	return &testEnv{
		svc:        attendance.NewService(dummydb.NewAttendanceRepository(db), studentSvc, sms, logger),
		studentSvc: studentSvc,
		classSvc:   class.NewService(dummydb.NewClassRepository(db)),
		sms:        sms,
	}
}

func logsvcForTests() core.Logger {
	return testLogger{log.New(io.Discard, "", 0)}
}

type testLogger struct{ std *log.Logger }

func (l testLogger) Debug(msg string, args ...interface{}) {}
func (l testLogger) Info(msg string, args ...interface{})  {}
func (l testLogger) Warn(msg string, args ...interface{})  {}
func (l testLogger) Error(msg string, args ...interface{}) {}
func (l testLogger) Fatal(msg string, args ...interface{}) { l.std.Fatal(msg) }

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

func owner() user.User   { return user.User{ID: 1, Name: "Boss", Role: user.RoleOwner} }
func teacher() user.User { return user.User{ID: 2, Name: "Teach", Role: user.RoleTeacher} }

func TestService_Mark(t *testing.T) {
	env := setup(t)
	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)
	now := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)

	data := attendance.MarkAttendance{QRData: student.EncodeToken(st.ID, st.FullName)}
	att, created, err := env.svc.Mark(data, owner(), now)
	if err != nil {
		t.Fatalf("Mark() failed: %v", err)
	}
	assert.True(t, created)
	assert.Equal(t, st.ID, att.StudentID)
	assert.Equal(t, cls.ID, att.ClassID)
	assert.Equal(t, core.Today(now), att.Date)
	assert.True(t, att.SMSSent)
	if assert.NotNil(t, att.MarkedByID) {
		assert.Equal(t, owner().ID, *att.MarkedByID)
	}

	// parent got exactly one arrival SMS
	assert.Equal(t, 1, env.sms.SentCount())
	assert.Equal(t, "+260971234567", env.sms.Sent[0].To)
	assert.Equal(t, "Your child Jane Banda has arrived for Grade 10 Math.", env.sms.Sent[0].Message)
}

func TestService_Mark_repeatScanSameDay(t *testing.T) {
	env := setup(t)
	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	data := attendance.MarkAttendance{QRData: student.EncodeToken(st.ID, st.FullName)}

	first, created, err := env.svc.Mark(data, owner(), now)
	if err != nil {
		t.Fatalf("Mark() failed: %v", err)
	}
	assert.True(t, created)

	// a later scan on the same day returns the existing record
	second, created, err := env.svc.Mark(data, teacher(), now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Mark() failed: %v", err)
	}
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, env.sms.SentCount())

	// a new day gets a new record
	_, created, err = env.svc.Mark(data, owner(), now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Mark() failed: %v", err)
	}
	assert.True(t, created)
	assert.Equal(t, 2, env.sms.SentCount())
}

func TestService_Mark_concurrentScans(t *testing.T) {
	env := setup(t)
	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	data := attendance.MarkAttendance{QRData: student.EncodeToken(st.ID, st.FullName)}

	const scans = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var createdCount int
	wg.Add(scans)
	for i := 0; i < scans; i++ {
		go func() {
			defer wg.Done()
			_, created, err := env.svc.Mark(data, owner(), now)
			if err != nil {
				t.Errorf("Mark() failed: %v", err)
				return
			}
			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount)

	records, err := env.svc.Filter(attendance.QueryFilter{StudentID: st.ID}, owner())
	if err != nil {
		t.Fatalf("Filter() failed: %v", err)
	}
	assert.Len(t, records, 1)
}

func TestService_Mark_errors(t *testing.T) {
	env := setup(t)
	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	assigned := env.createStudent(t, "Jane Banda", &cls.ID)
	unassigned := env.createStudent(t, "John Phiri", nil)

	inactive := env.createStudent(t, "Mary Zulu", &cls.ID)
	isActive := false
	if _, err := env.studentSvc.Update(inactive.ID, student.UpdateStudent{IsActive: &isActive}); err != nil {
		t.Fatalf("deactivating student failed: %v", err)
	}

	now := time.Now()
	tests := []struct {
		name    string
		qrData  string
		actor   user.User
		wantErr error
	}{
		{"student actor is rejected", student.EncodeToken(assigned.ID, assigned.FullName), user.User{ID: 9, Role: user.RoleStudent}, attendance.ErrForbidden},
		{"malformed token", "BADGE:1:Jane", owner(), student.ErrInvalidTokenFormat},
		{"unknown student", student.EncodeToken(999, "Ghost"), owner(), student.ErrStudentNotFound},
		{"inactive student", student.EncodeToken(inactive.ID, inactive.FullName), owner(), student.ErrStudentNotFound},
		{"unassigned student", student.EncodeToken(unassigned.ID, unassigned.FullName), owner(), attendance.ErrNoAssignedClass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, created, err := env.svc.Mark(attendance.MarkAttendance{QRData: tt.qrData}, tt.actor, now)
			assert.False(t, created)
			assert.Equal(t, tt.wantErr, err)
		})
	}
	assert.Equal(t, 0, env.sms.SentCount())
}

func TestService_Mark_smsFailureStillRecords(t *testing.T) {
	env := setup(t)
	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)
	env.sms.Fail = true

	data := attendance.MarkAttendance{QRData: student.EncodeToken(st.ID, st.FullName)}
	att, created, err := env.svc.Mark(data, owner(), time.Now())
	if err != nil {
		t.Fatalf("Mark() failed: %v", err)
	}
	assert.True(t, created)
	assert.False(t, att.SMSSent)
}

func TestService_DailyReport(t *testing.T) {
	env := setup(t)
	tch := teacher()
	mathCls := env.createClass(t, "Grade 10 Math", 3000, &tch.ID)
	physCls := env.createClass(t, "Grade 11 Physics", 4500, nil)
	mathSt := env.createStudent(t, "Jane Banda", &mathCls.ID)
	physSt := env.createStudent(t, "John Phiri", &physCls.ID)
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	for _, st := range []student.Student{mathSt, physSt} {
		data := attendance.MarkAttendance{QRData: student.EncodeToken(st.ID, st.FullName)}
		if _, _, err := env.svc.Mark(data, owner(), now); err != nil {
			t.Fatalf("Mark() failed: %v", err)
		}
	}

	// the owner sees both classes; income is the per-day proration of fees
	report, err := env.svc.DailyReport(now, owner())
	if err != nil {
		t.Fatalf("DailyReport() failed: %v", err)
	}
	assert.Equal(t, 2, report.TotalStudents)
	assert.Equal(t, core.Round2(3000.0/30+4500.0/30), report.TotalIncome)
	assert.Len(t, report.Attendances, 2)

	// the teacher only sees their own class
	report, err = env.svc.DailyReport(now, tch)
	if err != nil {
		t.Fatalf("DailyReport() failed: %v", err)
	}
	assert.Equal(t, 1, report.TotalStudents)
	assert.Equal(t, 100.0, report.TotalIncome)
	if assert.Len(t, report.Attendances, 1) {
		assert.Equal(t, mathSt.ID, report.Attendances[0].StudentID)
	}

	// empty day yields an empty report, not nulls
	report, err = env.svc.DailyReport(now.Add(48*time.Hour), owner())
	if err != nil {
		t.Fatalf("DailyReport() failed: %v", err)
	}
	assert.Equal(t, 0, report.TotalStudents)
	assert.Equal(t, 0.0, report.TotalIncome)
	assert.NotNil(t, report.Attendances)
	assert.Len(t, report.Attendances, 0)

	// students cannot pull reports
	_, err = env.svc.DailyReport(now, user.User{ID: 9, Role: user.RoleStudent})
	assert.Equal(t, attendance.ErrForbidden, err)
}
