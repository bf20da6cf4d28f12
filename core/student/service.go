package student

import (
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core"
)

var (
	ErrNotFound = errors.New("student not found")

	// ErrStudentNotFound is returned when a well-formed token does not resolve
	// to an active student.
	ErrStudentNotFound = errors.New("invalid student QR code")
)

type (
	Repository interface {
		CreateStudent(st Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		UpdateStudent(st Student, isActive *bool) (Student, error)
		SetStudentQRCodeURL(id int, url string) error
		DeleteStudentsByID(ids ...int) error
	}

	Service struct {
		repo   Repository
		qr     core.QRRenderer
		logger core.Logger
	}
)

func NewService(repo Repository, qr core.QRRenderer, logger core.Logger) *Service {
	return &Service{repo: repo, qr: qr, logger: logger}
}

// Create enrolls a student and generates their check-in QR code image.
// Image rendering is best-effort: a rendering failure is logged and leaves
// QRCodeURL empty, it never fails the enrollment.
func (svc *Service) Create(ns NewStudent) (Student, error) {
	dob, err := time.Parse(dateLayout, ns.DateOfBirth)
	if err != nil {
		return Student{}, pkgerrors.Wrap(err, "parsing date of birth")
	}

	now := time.Now().UTC()
	st := Student{
		UserID:          ns.UserID,
		FullName:        ns.FullName,
		DateOfBirth:     dob,
		ParentName:      ns.ParentName,
		ParentPhone:     ns.ParentPhone,
		ParentEmail:     ns.ParentEmail,
		Address:         ns.Address,
		AssignedClassID: ns.AssignedClassID,
		EnrollmentDate:  core.Today(now),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	st, err = svc.repo.CreateStudent(st)
	if err != nil {
		return Student{}, err
	}

	token := EncodeToken(st.ID, st.FullName)
	url, err := svc.qr.Render(token, fmt.Sprintf("student_%d_qr.png", st.ID))
	if err != nil {
		svc.logger.Error(fmt.Sprintf("rendering QR code for student %d: %v", st.ID, err), err)
		return st, nil
	}
	if err := svc.repo.SetStudentQRCodeURL(st.ID, url); err != nil {
		return Student{}, err
	}
	st.QRCodeURL = url
	return st, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

// ResolveToken decodes a scanned check-in token and resolves it to an active
// student. A syntactically valid token naming an unknown or inactive student
// yields ErrStudentNotFound.
func (svc *Service) ResolveToken(token string) (Student, error) {
	id, err := DecodeToken(token)
	if err != nil {
		return Student{}, err
	}
	st, err := svc.repo.GetStudentByID(id)
	if err != nil {
		if pkgerrors.Cause(err) == ErrNotFound {
			return Student{}, ErrStudentNotFound
		}
		return Student{}, err
	}
	if !st.IsActive {
		return Student{}, ErrStudentNotFound
	}
	return st, nil
}

// Update modifies a student. Absent fields keep their current values.
func (svc *Service) Update(id int, us UpdateStudent) (Student, error) {
	orig, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if err := us.Validate(orig); err != nil {
		return Student{}, err
	}

	dob, err := time.Parse(dateLayout, us.DateOfBirth)
	if err != nil {
		return Student{}, pkgerrors.Wrap(err, "parsing date of birth")
	}
	st := Student{
		ID:              orig.ID,
		FullName:        us.FullName,
		DateOfBirth:     dob,
		ParentName:      us.ParentName,
		ParentPhone:     us.ParentPhone,
		ParentEmail:     us.ParentEmail,
		Address:         us.Address,
		AssignedClassID: us.AssignedClassID,
		UpdatedAt:       time.Now().UTC(),
	}
	return svc.repo.UpdateStudent(st, us.IsActive)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteStudentsByID(ids...)
}
