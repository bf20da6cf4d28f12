package class

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("class not found")

type (
	// Repository implementations must make DeleteClassesByID detach enrolled
	// students (their assignment becomes null) and cascade attendance and
	// payment deletion.
	Repository interface {
		CreateClass(cls Class) (Class, error)
		QueryAllClasses() ([]Class, error)
		GetClassByID(id int) (Class, error)
		UpdateClass(cls Class) (Class, error)
		DeleteClassesByID(ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		Name:        nc.Name,
		Subject:     nc.Subject,
		TeacherID:   nc.TeacherID,
		FeePerMonth: nc.FeePerMonth,
		Schedule:    nc.Schedule,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateClass(cls)
}

func (svc *Service) QueryAll() ([]Class, error) {
	return svc.repo.QueryAllClasses()
}

func (svc *Service) GetByID(id int) (Class, error) {
	return svc.repo.GetClassByID(id)
}

// Update modifies a class. Absent fields keep their current values.
func (svc *Service) Update(id int, uc UpdateClass) (Class, error) {
	orig, err := svc.repo.GetClassByID(id)
	if err != nil {
		return Class{}, err
	}
	if err := uc.Validate(orig); err != nil {
		return Class{}, err
	}

	cls := Class{
		ID:          orig.ID,
		Name:        uc.Name,
		Subject:     uc.Subject,
		TeacherID:   uc.TeacherID,
		FeePerMonth: *uc.FeePerMonth,
		Schedule:    uc.Schedule,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateClass(cls)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteClassesByID(ids...)
}
