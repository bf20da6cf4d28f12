package student

import (
	"time"

	"github.com/Yazi0/SmartTuitionManager/core"
)

const dateLayout = "2006-01-02"

type Student struct {
	ID              int       `db:"id" json:"id"`
	UserID          *int      `db:"user_id" json:"user"`
	FullName        string    `db:"full_name" json:"full_name"`
	DateOfBirth     time.Time `db:"date_of_birth" json:"date_of_birth"`
	ParentName      string    `db:"parent_name" json:"parent_name"`
	ParentPhone     string    `db:"parent_phone" json:"parent_phone"`
	ParentEmail     string    `db:"parent_email" json:"parent_email"`
	Address         string    `db:"address" json:"address"`
	AssignedClassID *int      `db:"assigned_class_id" json:"assigned_class"`
	ClassName       string    `db:"class_name" json:"class_name"`
	QRCodeURL       string    `db:"qr_code_url" json:"qr_code_url"`
	EnrollmentDate  time.Time `db:"enrollment_date" json:"enrollment_date"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"` // UTC
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"` // UTC
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	FullName        string `json:"full_name" validate:"required"`
	DateOfBirth     string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	ParentName      string `json:"parent_name" validate:"required"`
	ParentPhone     string `json:"parent_phone" validate:"required,phone"`
	ParentEmail     string `json:"parent_email" validate:"omitempty,email"`
	Address         string `json:"address" validate:"required"`
	AssignedClassID *int   `json:"assigned_class"`
	UserID          *int   `json:"user"`
}

func (ns *NewStudent) Validate() error {
	ns.FullName = core.CleanString(ns.FullName)
	ns.ParentName = core.CleanString(ns.ParentName)
	ns.ParentPhone = core.CleanString(ns.ParentPhone)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)
	ns.Address = core.CleanString(ns.Address)
	return core.Validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Empty fields keep their current values.
type UpdateStudent struct {
	FullName        string `json:"full_name"`
	DateOfBirth     string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	ParentName      string `json:"parent_name"`
	ParentPhone     string `json:"parent_phone" validate:"omitempty,phone"`
	ParentEmail     string `json:"parent_email" validate:"omitempty,email"`
	Address         string `json:"address"`
	AssignedClassID *int   `json:"assigned_class"`
	IsActive        *bool  `json:"is_active"`
}

func (us *UpdateStudent) Validate(orig Student) error {
	if name := core.CleanString(us.FullName); name != "" {
		us.FullName = name
	} else {
		us.FullName = orig.FullName
	}
	if pname := core.CleanString(us.ParentName); pname != "" {
		us.ParentName = pname
	} else {
		us.ParentName = orig.ParentName
	}
	if phone := core.CleanString(us.ParentPhone); phone != "" {
		us.ParentPhone = phone
	} else {
		us.ParentPhone = orig.ParentPhone
	}
	if email := core.CleanString(us.ParentEmail, true /* lower */); email != "" {
		us.ParentEmail = email
	} else {
		us.ParentEmail = orig.ParentEmail
	}
	if addr := core.CleanString(us.Address); addr != "" {
		us.Address = addr
	} else {
		us.Address = orig.Address
	}
	if us.DateOfBirth == "" {
		us.DateOfBirth = orig.DateOfBirth.Format(dateLayout)
	}
	if us.AssignedClassID == nil {
		us.AssignedClassID = orig.AssignedClassID
	}
	return core.Validate.Struct(us)
}
