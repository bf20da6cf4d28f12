package dummydb

import (
	"sort"

	"github.com/Yazi0/SmartTuitionManager/core/payment"
)

type paymentRepository struct {
	db *DB
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(db *DB) payment.Repository {
	return &paymentRepository{db: db}
}

// hydrate fills the denormalized names. Callers must hold the lock.
func (repo *paymentRepository) hydrate(pmt payment.Payment) payment.Payment {
	if st, ok := repo.db.students[pmt.StudentID]; ok {
		pmt.StudentName = st.FullName
	}
	if cls, ok := repo.db.classes[pmt.ClassID]; ok {
		pmt.ClassName = cls.Name
	}
	if pmt.ReceivedByID != nil {
		if usr, ok := repo.db.users[*pmt.ReceivedByID]; ok {
			pmt.ReceivedByName = usr.Name
		}
	}
	return pmt
}

func sortPayments(payments []payment.Payment) {
	sort.Slice(payments, func(i, j int) bool {
		if payments[i].Year != payments[j].Year {
			return payments[i].Year > payments[j].Year
		}
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
}

func (repo *paymentRepository) CreatePayment(pmt payment.Payment) (payment.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, rec := range repo.db.payments {
		if rec.StudentID == pmt.StudentID && rec.ClassID == pmt.ClassID &&
			rec.Month == pmt.Month && rec.Year == pmt.Year {
			return payment.Payment{}, payment.ErrDuplicatePayment
		}
	}

	repo.db.paymentPK++
	pmt.ID = repo.db.paymentPK
	repo.db.payments[pmt.ID] = &pmt
	return repo.hydrate(pmt), nil
}

func (repo *paymentRepository) FilterPayments(filter payment.QueryFilter) ([]payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var payments []payment.Payment
	for _, pmt := range repo.db.payments {
		if filter.StudentID > 0 && pmt.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && pmt.Status != filter.Status {
			continue
		}
		payments = append(payments, repo.hydrate(*pmt))
	}
	sortPayments(payments)
	return payments, nil
}

func (repo *paymentRepository) GetPaymentByID(id int) (payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if pmt, ok := repo.db.payments[id]; ok {
		return repo.hydrate(*pmt), nil
	}
	return payment.Payment{}, payment.ErrNotFound
}

func (repo *paymentRepository) UpdatePayment(pmt payment.Payment) (payment.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origPmt, ok := repo.db.payments[pmt.ID]
	if !ok {
		return payment.Payment{}, payment.ErrNotFound
	}
	for _, rec := range repo.db.payments {
		if rec.ID != pmt.ID && rec.StudentID == origPmt.StudentID && rec.ClassID == origPmt.ClassID &&
			rec.Month == pmt.Month && rec.Year == pmt.Year {
			return payment.Payment{}, payment.ErrDuplicatePayment
		}
	}
	origPmt.Month = pmt.Month
	origPmt.Year = pmt.Year
	origPmt.Amount = pmt.Amount
	origPmt.Status = pmt.Status
	origPmt.PaymentDate = pmt.PaymentDate
	origPmt.ReceivedByID = pmt.ReceivedByID
	origPmt.Notes = pmt.Notes
	origPmt.UpdatedAt = pmt.UpdatedAt
	return repo.hydrate(*origPmt), nil
}

func (repo *paymentRepository) SetPaymentSMSSent(id int, sent bool) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if pmt, ok := repo.db.payments[id]; ok {
		pmt.SMSSent = sent
	}
	return nil
}

func (repo *paymentRepository) DeletePaymentsByID(ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.payments, id)
	}
	return nil
}

func (repo *paymentRepository) QueryOutstandingPayments() ([]payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var payments []payment.Payment
	for _, pmt := range repo.db.payments {
		if pmt.Status == payment.StatusPending || pmt.Status == payment.StatusOverdue {
			payments = append(payments, repo.hydrate(*pmt))
		}
	}
	sortPayments(payments)
	return payments, nil
}

func (repo *paymentRepository) QueryPaidPayments(month string, year int) ([]payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var payments []payment.Payment
	for _, pmt := range repo.db.payments {
		if pmt.Status == payment.StatusPaid && pmt.Month == month && pmt.Year == year {
			payments = append(payments, repo.hydrate(*pmt))
		}
	}
	sortPayments(payments)
	return payments, nil
}
