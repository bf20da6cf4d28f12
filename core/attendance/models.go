package attendance

import (
	"time"

	"github.com/Yazi0/SmartTuitionManager/core"
)

// Attendance is one student's check-in for one class on one day.
// At most one record exists per (student, class, date); once created, only
// the sms_sent flag is ever written afterwards.
type Attendance struct {
	ID           int       `db:"id" json:"id"`
	StudentID    int       `db:"student_id" json:"student"`
	StudentName  string    `db:"student_name" json:"student_name"`
	ClassID      int       `db:"class_id" json:"class_attended"`
	ClassName    string    `db:"class_name" json:"class_name"`
	Date         time.Time `db:"date" json:"date"`
	Time         time.Time `db:"time" json:"time"`
	MarkedByID   *int      `db:"marked_by_id" json:"marked_by"`
	MarkedByName string    `db:"marked_by_name" json:"marked_by_name"`
	SMSSent      bool      `db:"sms_sent" json:"sms_sent"`
	ClassFee     float64   `db:"fee_per_month" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // UTC
}

// MarkAttendance is the check-in request payload: the raw contents of a
// scanned QR code.
type MarkAttendance struct {
	QRData string `json:"qr_data" validate:"required"`
}

func (ma *MarkAttendance) Validate() error {
	ma.QRData = core.CleanString(ma.QRData)
	return core.Validate.Struct(ma)
}

// QueryFilter applies AND operation on its non-zero fields.
type QueryFilter struct {
	Date      *time.Time
	ClassID   int
	StudentID int
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Date == nil && qf.ClassID == 0 && qf.StudentID == 0
}

// DailyReport summarizes one day's check-ins. TotalIncome is a proration
// estimate (each class's monthly fee divided by 30 per attending student),
// not a sum of actual payments received.
type DailyReport struct {
	Date          time.Time    `json:"date"`
	TotalStudents int          `json:"total_students"`
	TotalIncome   float64      `json:"total_income"`
	Attendances   []Attendance `json:"attendances"`
}
