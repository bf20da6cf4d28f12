package dummydb

import (
	"sort"

	"github.com/Yazi0/SmartTuitionManager/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

// hydrate fills the denormalized class name. Callers must hold the lock.
func (repo *studentRepository) hydrate(st student.Student) student.Student {
	if st.AssignedClassID != nil {
		if cls, ok := repo.db.classes[*st.AssignedClassID]; ok {
			st.ClassName = cls.Name
		}
	}
	return st
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.students))
	for _, st := range repo.db.students {
		students = append(students, repo.hydrate(*st))
	}
	sort.Slice(students, func(i, j int) bool { return students[i].FullName < students[j].FullName })
	return students
}

func (repo *studentRepository) CreateStudent(st student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.studentPK++
	st.ID = repo.db.studentPK
	repo.db.students[st.ID] = &st
	return repo.hydrate(st), nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return repo.hydrate(*st), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(st student.Student, isActive *bool) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origSt, ok := repo.db.students[st.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	if isActive != nil {
		origSt.IsActive = *isActive
	}
	origSt.FullName = st.FullName
	origSt.DateOfBirth = st.DateOfBirth
	origSt.ParentName = st.ParentName
	origSt.ParentPhone = st.ParentPhone
	origSt.ParentEmail = st.ParentEmail
	origSt.Address = st.Address
	origSt.AssignedClassID = st.AssignedClassID
	origSt.UpdatedAt = st.UpdatedAt
	return repo.hydrate(*origSt), nil
}

func (repo *studentRepository) SetStudentQRCodeURL(id int, url string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if st, ok := repo.db.students[id]; ok {
		st.QRCodeURL = url
	}
	return nil
}

func (repo *studentRepository) DeleteStudentsByID(ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.students, id)
		for attID, att := range repo.db.attendances {
			if att.StudentID == id {
				delete(repo.db.attendances, attID)
			}
		}
		for pmtID, pmt := range repo.db.payments {
			if pmt.StudentID == id {
				delete(repo.db.payments, pmtID)
			}
		}
	}
	return nil
}
