package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Yazi0/SmartTuitionManager/core/student"
)

const studentSelect = `
	SELECT s.*, COALESCE(c.name, '') AS class_name
	FROM students s
	LEFT JOIN classes c ON c.id = s.assigned_class_id`

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(st student.Student) (student.Student, error) {
	const query = `
		INSERT INTO students (user_id, full_name, date_of_birth, parent_name, parent_phone, parent_email,
		                      address, assigned_class_id, qr_code_url, enrollment_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := repo.db.Get(
		&st.ID, query,
		st.UserID, st.FullName, st.DateOfBirth, st.ParentName, st.ParentPhone, st.ParentEmail,
		st.Address, st.AssignedClassID, st.QRCodeURL, st.EnrollmentDate, st.IsActive, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		return student.Student{}, err
	}
	return repo.GetStudentByID(st.ID)
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	var students []student.Student
	if err := repo.db.Select(&students, studentSelect+` ORDER BY s.full_name`); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	var st student.Student
	if err := repo.db.Get(&st, studentSelect+` WHERE s.id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return st, nil
}

func (repo *studentRepository) UpdateStudent(st student.Student, isActive *bool) (student.Student, error) {
	const query = `
		UPDATE students
		SET full_name = $1, date_of_birth = $2, parent_name = $3, parent_phone = $4, parent_email = $5,
		    address = $6, assigned_class_id = $7, is_active = COALESCE($8, is_active), updated_at = $9
		WHERE id = $10`
	res, err := repo.db.Exec(
		query,
		st.FullName, st.DateOfBirth, st.ParentName, st.ParentPhone, st.ParentEmail,
		st.Address, st.AssignedClassID, isActive, st.UpdatedAt, st.ID,
	)
	if err != nil {
		return student.Student{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.GetStudentByID(st.ID)
}

func (repo *studentRepository) SetStudentQRCodeURL(id int, url string) error {
	_, err := repo.db.Exec(`UPDATE students SET qr_code_url = $1 WHERE id = $2`, url, id)
	return err
}

func (repo *studentRepository) DeleteStudentsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM students WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	_, err = repo.db.Exec(repo.db.Rebind(query), args...)
	return err
}
