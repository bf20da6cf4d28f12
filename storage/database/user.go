package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Yazi0/SmartTuitionManager/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	query := `SELECT username, email FROM users WHERE (username = ? OR (? <> '' AND email = ?))`
	args := []interface{}{username, email, email}
	if len(excludedUsers) > 0 {
		ids := make([]int, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		query += ` AND id NOT IN (?)`
		args = append(args, ids)
	}
	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}

	rows, err := repo.db.Query(repo.db.Rebind(query), inArgs...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var uname, mail string
		if err = rows.Scan(&uname, &mail); err != nil {
			return err
		}
		if uname == username {
			return user.ErrUsernameExists
		}
		if email != "" && mail == email {
			return user.ErrEmailExists
		}
	}
	return rows.Err()
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	const query = `
		INSERT INTO users (name, username, email, role, is_active, password_hash, created_at, updated_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := repo.db.Get(
		&usr.ID, query,
		usr.Name, usr.Username, usr.Email, usr.Role, usr.IsActive, usr.PasswordHash,
		usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	)
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	var usr user.User
	if err := repo.db.Get(&usr, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) GetUserByUsernameOrEmail(uname string) (user.User, error) {
	var usr user.User
	query := `SELECT * FROM users WHERE username = $1 OR ($1 <> '' AND email = $1)`
	if err := repo.db.Get(&usr, query, uname); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryUsersByRole(role string) ([]user.User, error) {
	var users []user.User
	if err := repo.db.Select(&users, `SELECT * FROM users WHERE role = $1 ORDER BY name`, role); err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	query := `UPDATE users SET name = $1, email = $2, updated_at = $3`
	args := []interface{}{usr.Name, usr.Email, usr.UpdatedAt}
	idx := 4
	if len(usr.PasswordHash) > 0 {
		query += fmt.Sprintf(", password_hash = $%d", idx)
		args = append(args, usr.PasswordHash)
		idx++
	}
	if !usr.LastLogin.IsZero() {
		query += fmt.Sprintf(", last_login = $%d", idx)
		args = append(args, usr.LastLogin)
		idx++
	}
	if isActive != nil {
		query += fmt.Sprintf(", is_active = $%d", idx)
		args = append(args, *isActive)
		idx++
	}
	query += fmt.Sprintf(" WHERE id = $%d", idx)
	args = append(args, usr.ID)

	res, err := repo.db.Exec(query, args...)
	if err != nil {
		return user.User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(usr.ID)
}

func (repo *userRepository) DeleteUsersByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	_, err = repo.db.Exec(repo.db.Rebind(query), args...)
	return err
}
