package attendance

import (
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/student"
	"github.com/Yazi0/SmartTuitionManager/core/user"
)

var (
	ErrForbidden       = errors.New("permission denied")
	ErrNoAssignedClass = errors.New("student is not assigned to any class")
)

type (
	Repository interface {
		// GetOrCreateAttendance atomically creates att unless a record already
		// exists for its (student, class, date) key, in which case the existing
		// record is returned with created=false. The uniqueness check and the
		// insert must not race under concurrent calls.
		GetOrCreateAttendance(att Attendance) (rec Attendance, created bool, err error)
		SetAttendanceSMSSent(id int, sent bool) error
		FilterAttendance(filter QueryFilter) ([]Attendance, error)
		// QueryAttendanceByTeacher returns the day's records restricted to
		// classes taught by the given teacher.
		QueryAttendanceByTeacher(date time.Time, teacherID int) ([]Attendance, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
		sms      core.SMSService
		logger   core.Logger
	}
)

func NewService(repo Repository, students *student.Service, sms core.SMSService, logger core.Logger) *Service {
	return &Service{repo: repo, students: students, sms: sms, logger: logger}
}

// Mark checks a student in from a scanned QR token.
//
// The record is persisted before any notification is attempted; the SMS
// outcome only ever updates the sms_sent flag. A repeat scan on the same day
// is not an error: the existing record is returned with created=false.
func (svc *Service) Mark(data MarkAttendance, actor user.User, now time.Time) (Attendance, bool, error) {
	if !(actor.IsOwner() || actor.IsTeacher()) {
		return Attendance{}, false, ErrForbidden
	}

	st, err := svc.students.ResolveToken(data.QRData)
	if err != nil {
		return Attendance{}, false, err
	}
	if st.AssignedClassID == nil {
		return Attendance{}, false, ErrNoAssignedClass
	}

	actorID := actor.ID
	att := Attendance{
		StudentID:  st.ID,
		ClassID:    *st.AssignedClassID,
		Date:       core.Today(now),
		Time:       now.UTC(),
		MarkedByID: &actorID,
		CreatedAt:  now.UTC(),
	}
	att, created, err := svc.repo.GetOrCreateAttendance(att)
	if err != nil {
		return Attendance{}, false, pkgerrors.Wrap(err, "recording attendance")
	}
	if !created {
		return att, false, nil
	}

	sent := svc.sms.Send(st.ParentPhone, core.AttendanceSMS(st.FullName, att.ClassName))
	if err := svc.repo.SetAttendanceSMSSent(att.ID, sent); err != nil {
		// the check-in itself succeeded; losing the flag is not fatal
		svc.logger.Error(fmt.Sprintf("updating sms_sent on attendance %d: %v", att.ID, err), err)
	}
	att.SMSSent = sent
	return att, true, nil
}

func (svc *Service) Filter(filter QueryFilter, actor user.User) ([]Attendance, error) {
	if !(actor.IsOwner() || actor.IsTeacher()) {
		return nil, ErrForbidden
	}
	return svc.repo.FilterAttendance(filter)
}

// DailyReport aggregates one day's check-ins. A teacher only sees classes
// they teach; an owner sees everything.
func (svc *Service) DailyReport(date time.Time, actor user.User) (DailyReport, error) {
	if !(actor.IsOwner() || actor.IsTeacher()) {
		return DailyReport{}, ErrForbidden
	}

	date = core.Today(date)
	var records []Attendance
	var err error
	if actor.IsTeacher() {
		records, err = svc.repo.QueryAttendanceByTeacher(date, actor.ID)
	} else {
		records, err = svc.repo.FilterAttendance(QueryFilter{Date: &date})
	}
	if err != nil {
		return DailyReport{}, pkgerrors.Wrap(err, "querying attendance")
	}
	if records == nil {
		records = []Attendance{}
	}

	var income float64
	for _, rec := range records {
		income += rec.ClassFee / 30
	}
	return DailyReport{
		Date:          date,
		TotalStudents: len(records),
		TotalIncome:   core.Round2(income),
		Attendances:   records,
	}, nil
}
