package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Yazi0/SmartTuitionManager/core/attendance"
)

const attendanceSelect = `
	SELECT a.*, s.full_name AS student_name, c.name AS class_name, c.fee_per_month,
	       COALESCE(u.name, '') AS marked_by_name
	FROM attendance a
	JOIN students s ON s.id = a.student_id
	JOIN classes c ON c.id = a.class_id
	LEFT JOIN users u ON u.id = a.marked_by_id`

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// GetOrCreateAttendance leans on the (student_id, class_id, date) unique
// constraint so concurrent scans of the same QR code resolve to one row.
func (repo *attendanceRepository) GetOrCreateAttendance(att attendance.Attendance) (attendance.Attendance, bool, error) {
	const insert = `
		INSERT INTO attendance (student_id, class_id, date, time, marked_by_id, sms_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT attendance_student_class_date_key DO NOTHING
		RETURNING id`
	err := repo.db.Get(
		&att.ID, insert,
		att.StudentID, att.ClassID, att.Date, att.Time, att.MarkedByID, att.SMSSent, att.CreatedAt,
	)
	if err == nil {
		rec, err := repo.getAttendanceByID(att.ID)
		return rec, true, err
	}
	if err != sql.ErrNoRows {
		return attendance.Attendance{}, false, err
	}

	// conflict; fetch the existing record for the day
	var rec attendance.Attendance
	const query = attendanceSelect + ` WHERE a.student_id = $1 AND a.class_id = $2 AND a.date = $3`
	if err := repo.db.Get(&rec, query, att.StudentID, att.ClassID, att.Date); err != nil {
		return attendance.Attendance{}, false, err
	}
	return rec, false, nil
}

func (repo *attendanceRepository) getAttendanceByID(id int) (attendance.Attendance, error) {
	var rec attendance.Attendance
	if err := repo.db.Get(&rec, attendanceSelect+` WHERE a.id = $1`, id); err != nil {
		return attendance.Attendance{}, err
	}
	return rec, nil
}

func (repo *attendanceRepository) SetAttendanceSMSSent(id int, sent bool) error {
	_, err := repo.db.Exec(`UPDATE attendance SET sms_sent = $1 WHERE id = $2`, sent, id)
	return err
}

func (repo *attendanceRepository) FilterAttendance(filter attendance.QueryFilter) ([]attendance.Attendance, error) {
	query := attendanceSelect + ` WHERE true`
	var args []interface{}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		query += fmt.Sprintf(" AND a.date = $%d", len(args))
	}
	if filter.ClassID > 0 {
		args = append(args, filter.ClassID)
		query += fmt.Sprintf(" AND a.class_id = $%d", len(args))
	}
	if filter.StudentID > 0 {
		args = append(args, filter.StudentID)
		query += fmt.Sprintf(" AND a.student_id = $%d", len(args))
	}
	query += ` ORDER BY a.date DESC, a.time DESC`

	var records []attendance.Attendance
	if err := repo.db.Select(&records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *attendanceRepository) QueryAttendanceByTeacher(date time.Time, teacherID int) ([]attendance.Attendance, error) {
	const query = attendanceSelect + `
		WHERE a.date = $1 AND c.teacher_id = $2
		ORDER BY a.time DESC`
	var records []attendance.Attendance
	if err := repo.db.Select(&records, query, date, teacherID); err != nil {
		return nil, err
	}
	return records, nil
}
