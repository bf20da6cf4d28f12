package database

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Yazi0/SmartTuitionManager/core/class"
)

const classSelect = `
	SELECT c.*, COALESCE(u.name, '') AS teacher_name,
	       (SELECT COUNT(*) FROM students s WHERE s.assigned_class_id = c.id) AS student_count
	FROM classes c
	LEFT JOIN users u ON u.id = c.teacher_id`

type classRepository struct {
	db *sqlx.DB
}

func NewClassRepository(db *sqlx.DB) class.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(cls class.Class) (class.Class, error) {
	const query = `
		INSERT INTO classes (name, subject, teacher_id, fee_per_month, schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := repo.db.Get(
		&cls.ID, query,
		cls.Name, cls.Subject, cls.TeacherID, cls.FeePerMonth, cls.Schedule, cls.CreatedAt, cls.UpdatedAt,
	)
	if err != nil {
		return class.Class{}, err
	}
	return repo.GetClassByID(cls.ID)
}

func (repo *classRepository) QueryAllClasses() ([]class.Class, error) {
	var classes []class.Class
	if err := repo.db.Select(&classes, classSelect+` ORDER BY c.name`); err != nil {
		return nil, err
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(id int) (class.Class, error) {
	var cls class.Class
	if err := repo.db.Get(&cls, classSelect+` WHERE c.id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, err
	}
	return cls, nil
}

func (repo *classRepository) UpdateClass(cls class.Class) (class.Class, error) {
	const query = `
		UPDATE classes
		SET name = $1, subject = $2, teacher_id = $3, fee_per_month = $4, schedule = $5, updated_at = $6
		WHERE id = $7`
	res, err := repo.db.Exec(query, cls.Name, cls.Subject, cls.TeacherID, cls.FeePerMonth, cls.Schedule, cls.UpdatedAt, cls.ID)
	if err != nil {
		return class.Class{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return class.Class{}, class.ErrNotFound
	}
	return repo.GetClassByID(cls.ID)
}

// DeleteClassesByID relies on the schema to do the right thing: enrolled
// students are detached (assigned_class_id set to null) while attendance and
// payment rows cascade away with the class.
func (repo *classRepository) DeleteClassesByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM classes WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	_, err = repo.db.Exec(repo.db.Rebind(query), args...)
	return err
}
