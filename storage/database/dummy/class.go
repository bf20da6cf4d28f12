package dummydb

import (
	"sort"

	"github.com/Yazi0/SmartTuitionManager/core/class"
)

type classRepository struct {
	db *DB
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db}
}

// hydrate fills the teacher name and enrolled student count. Callers must
// hold the lock.
func (repo *classRepository) hydrate(cls class.Class) class.Class {
	if cls.TeacherID != nil {
		if usr, ok := repo.db.users[*cls.TeacherID]; ok {
			cls.TeacherName = usr.Name
		}
	}
	cls.StudentCount = 0
	for _, st := range repo.db.students {
		if st.AssignedClassID != nil && *st.AssignedClassID == cls.ID {
			cls.StudentCount++
		}
	}
	return cls
}

func (repo *classRepository) CreateClass(cls class.Class) (class.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.classPK++
	cls.ID = repo.db.classPK
	repo.db.classes[cls.ID] = &cls
	return repo.hydrate(cls), nil
}

func (repo *classRepository) QueryAllClasses() ([]class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]class.Class, 0, len(repo.db.classes))
	for _, cls := range repo.db.classes {
		classes = append(classes, repo.hydrate(*cls))
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

func (repo *classRepository) GetClassByID(id int) (class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return repo.hydrate(*cls), nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) UpdateClass(cls class.Class) (class.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origCls, ok := repo.db.classes[cls.ID]
	if !ok {
		return class.Class{}, class.ErrNotFound
	}
	origCls.Name = cls.Name
	origCls.Subject = cls.Subject
	origCls.TeacherID = cls.TeacherID
	origCls.FeePerMonth = cls.FeePerMonth
	origCls.Schedule = cls.Schedule
	origCls.UpdatedAt = cls.UpdatedAt
	return repo.hydrate(*origCls), nil
}

func (repo *classRepository) DeleteClassesByID(ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.classes, id)
		// detach enrolled students, drop dependent records
		for _, st := range repo.db.students {
			if st.AssignedClassID != nil && *st.AssignedClassID == id {
				st.AssignedClassID = nil
			}
		}
		for attID, att := range repo.db.attendances {
			if att.ClassID == id {
				delete(repo.db.attendances, attID)
			}
		}
		for pmtID, pmt := range repo.db.payments {
			if pmt.ClassID == id {
				delete(repo.db.payments, pmtID)
			}
		}
	}
	return nil
}
