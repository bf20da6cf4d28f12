package class

import (
	"time"

	"github.com/Yazi0/SmartTuitionManager/core"
)

type Class struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Subject      string    `db:"subject" json:"subject"`
	TeacherID    *int      `db:"teacher_id" json:"teacher"`
	TeacherName  string    `db:"teacher_name" json:"teacher_name"`
	FeePerMonth  float64   `db:"fee_per_month" json:"fee_per_month"`
	Schedule     string    `db:"schedule" json:"schedule"` // e.g. "Mon/Wed/Fri 4-6 PM"
	StudentCount int       `db:"student_count" json:"student_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // UTC
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"` // UTC
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name        string  `json:"name" validate:"required"`
	Subject     string  `json:"subject" validate:"required"`
	TeacherID   *int    `json:"teacher"`
	FeePerMonth float64 `json:"fee_per_month" validate:"required,gt=0"`
	Schedule    string  `json:"schedule" validate:"required"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Schedule = core.CleanString(nc.Schedule)
	return core.Validate.Struct(nc)
}

// UpdateClass defines what information may be provided to modify an existing
// Class. Empty fields keep their current values.
type UpdateClass struct {
	Name        string   `json:"name"`
	Subject     string   `json:"subject"`
	TeacherID   *int     `json:"teacher"`
	FeePerMonth *float64 `json:"fee_per_month" validate:"omitempty,gt=0"`
	Schedule    string   `json:"schedule"`
}

func (uc *UpdateClass) Validate(orig Class) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	if subject := core.CleanString(uc.Subject); subject != "" {
		uc.Subject = subject
	} else {
		uc.Subject = orig.Subject
	}
	if schedule := core.CleanString(uc.Schedule); schedule != "" {
		uc.Schedule = schedule
	} else {
		uc.Schedule = orig.Schedule
	}
	if uc.FeePerMonth == nil {
		fee := orig.FeePerMonth
		uc.FeePerMonth = &fee
	}
	if uc.TeacherID == nil {
		uc.TeacherID = orig.TeacherID
	}
	return core.Validate.Struct(uc)
}
