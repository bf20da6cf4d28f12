package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Yazi0/SmartTuitionManager/core/payment"
)

const uniqueViolation = "23505"

const paymentSelect = `
	SELECT p.*, s.full_name AS student_name, c.name AS class_name,
	       COALESCE(u.name, '') AS received_by_name
	FROM payments p
	JOIN students s ON s.id = p.student_id
	JOIN classes c ON c.id = p.class_id
	LEFT JOIN users u ON u.id = p.received_by_id`

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) payment.Repository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) CreatePayment(pmt payment.Payment) (payment.Payment, error) {
	const query = `
		INSERT INTO payments (student_id, class_id, month, year, amount, status, payment_date,
		                      received_by_id, sms_sent, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := repo.db.Get(
		&pmt.ID, query,
		pmt.StudentID, pmt.ClassID, pmt.Month, pmt.Year, pmt.Amount, pmt.Status, pmt.PaymentDate,
		pmt.ReceivedByID, pmt.SMSSent, pmt.Notes, pmt.CreatedAt, pmt.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return payment.Payment{}, payment.ErrDuplicatePayment
		}
		return payment.Payment{}, err
	}
	return repo.GetPaymentByID(pmt.ID)
}

func (repo *paymentRepository) FilterPayments(filter payment.QueryFilter) ([]payment.Payment, error) {
	query := paymentSelect + ` WHERE true`
	var args []interface{}
	if filter.StudentID > 0 {
		args = append(args, filter.StudentID)
		query += fmt.Sprintf(" AND p.student_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	query += ` ORDER BY p.year DESC, p.created_at DESC`

	var payments []payment.Payment
	if err := repo.db.Select(&payments, query, args...); err != nil {
		return nil, err
	}
	return payments, nil
}

func (repo *paymentRepository) GetPaymentByID(id int) (payment.Payment, error) {
	var pmt payment.Payment
	if err := repo.db.Get(&pmt, paymentSelect+` WHERE p.id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return payment.Payment{}, payment.ErrNotFound
		}
		return payment.Payment{}, err
	}
	return pmt, nil
}

func (repo *paymentRepository) UpdatePayment(pmt payment.Payment) (payment.Payment, error) {
	const query = `
		UPDATE payments
		SET month = $1, year = $2, amount = $3, status = $4, payment_date = $5,
		    received_by_id = $6, notes = $7, updated_at = $8
		WHERE id = $9`
	res, err := repo.db.Exec(
		query,
		pmt.Month, pmt.Year, pmt.Amount, pmt.Status, pmt.PaymentDate,
		pmt.ReceivedByID, pmt.Notes, pmt.UpdatedAt, pmt.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return payment.Payment{}, payment.ErrDuplicatePayment
		}
		return payment.Payment{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return payment.Payment{}, payment.ErrNotFound
	}
	return repo.GetPaymentByID(pmt.ID)
}

func (repo *paymentRepository) SetPaymentSMSSent(id int, sent bool) error {
	_, err := repo.db.Exec(`UPDATE payments SET sms_sent = $1 WHERE id = $2`, sent, id)
	return err
}

func (repo *paymentRepository) DeletePaymentsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM payments WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	_, err = repo.db.Exec(repo.db.Rebind(query), args...)
	return err
}

func (repo *paymentRepository) QueryOutstandingPayments() ([]payment.Payment, error) {
	const query = paymentSelect + `
		WHERE p.status IN ('pending', 'overdue')
		ORDER BY p.year DESC, p.created_at DESC`
	var payments []payment.Payment
	if err := repo.db.Select(&payments, query); err != nil {
		return nil, err
	}
	return payments, nil
}

func (repo *paymentRepository) QueryPaidPayments(month string, year int) ([]payment.Payment, error) {
	const query = paymentSelect + `
		WHERE p.status = 'paid' AND p.month = $1 AND p.year = $2
		ORDER BY p.created_at DESC`
	var payments []payment.Payment
	if err := repo.db.Select(&payments, query, month, year); err != nil {
		return nil, err
	}
	return payments, nil
}
