package dummydb

import (
	"sort"
	"time"

	"github.com/Yazi0/SmartTuitionManager/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// hydrate fills the denormalized names and the class fee. Callers must hold
// the lock.
func (repo *attendanceRepository) hydrate(att attendance.Attendance) attendance.Attendance {
	if st, ok := repo.db.students[att.StudentID]; ok {
		att.StudentName = st.FullName
	}
	if cls, ok := repo.db.classes[att.ClassID]; ok {
		att.ClassName = cls.Name
		att.ClassFee = cls.FeePerMonth
	}
	if att.MarkedByID != nil {
		if usr, ok := repo.db.users[*att.MarkedByID]; ok {
			att.MarkedByName = usr.Name
		}
	}
	return att
}

func sortAttendance(records []attendance.Attendance) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].Time.After(records[j].Time)
	})
}

func (repo *attendanceRepository) GetOrCreateAttendance(att attendance.Attendance) (attendance.Attendance, bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// the lookup and the insert share one critical section, matching the
	// uniqueness guarantee of the real store
	for _, rec := range repo.db.attendances {
		if rec.StudentID == att.StudentID && rec.ClassID == att.ClassID && rec.Date.Equal(att.Date) {
			return repo.hydrate(*rec), false, nil
		}
	}

	repo.db.attendancePK++
	att.ID = repo.db.attendancePK
	repo.db.attendances[att.ID] = &att
	return repo.hydrate(att), true, nil
}

func (repo *attendanceRepository) SetAttendanceSMSSent(id int, sent bool) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if att, ok := repo.db.attendances[id]; ok {
		att.SMSSent = sent
	}
	return nil
}

func (repo *attendanceRepository) FilterAttendance(filter attendance.QueryFilter) ([]attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var records []attendance.Attendance
	for _, att := range repo.db.attendances {
		if filter.Date != nil && !att.Date.Equal(*filter.Date) {
			continue
		}
		if filter.ClassID > 0 && att.ClassID != filter.ClassID {
			continue
		}
		if filter.StudentID > 0 && att.StudentID != filter.StudentID {
			continue
		}
		records = append(records, repo.hydrate(*att))
	}
	sortAttendance(records)
	return records, nil
}

func (repo *attendanceRepository) QueryAttendanceByTeacher(date time.Time, teacherID int) ([]attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var records []attendance.Attendance
	for _, att := range repo.db.attendances {
		if !att.Date.Equal(date) {
			continue
		}
		cls, ok := repo.db.classes[att.ClassID]
		if !ok || cls.TeacherID == nil || *cls.TeacherID != teacherID {
			continue
		}
		records = append(records, repo.hydrate(*att))
	}
	sortAttendance(records)
	return records, nil
}
