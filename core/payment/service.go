package payment

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/Yazi0/SmartTuitionManager/core"
	"github.com/Yazi0/SmartTuitionManager/core/student"
)

var (
	ErrNotFound         = errors.New("payment not found")
	ErrDuplicatePayment = errors.New("a payment for this student, class and month already exists")
	ErrMissingParameter = errors.New("month and year parameters required")
)

type (
	Repository interface {
		// CreatePayment fails with ErrDuplicatePayment when a record already
		// exists for the (student, class, month, year) key; the existing row is
		// left untouched.
		CreatePayment(pmt Payment) (Payment, error)
		FilterPayments(filter QueryFilter) ([]Payment, error)
		GetPaymentByID(id int) (Payment, error)
		UpdatePayment(pmt Payment) (Payment, error)
		SetPaymentSMSSent(id int, sent bool) error
		DeletePaymentsByID(ids ...int) error
		QueryOutstandingPayments() ([]Payment, error)
		QueryPaidPayments(month string, year int) ([]Payment, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
		sms      core.SMSService
		mail     core.EmailService
		logger   core.Logger
	}
)

func NewService(repo Repository, students *student.Service, sms core.SMSService, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{repo: repo, students: students, sms: sms, mail: mailSvc, logger: logger}
}

func (svc *Service) Create(np NewPayment) (Payment, error) {
	paymentDate, err := parseDate(np.PaymentDate)
	if err != nil {
		return Payment{}, pkgerrors.Wrap(err, "parsing payment date")
	}

	now := time.Now().UTC()
	pmt := Payment{
		StudentID:    np.StudentID,
		ClassID:      np.ClassID,
		Month:        np.Month,
		Year:         np.Year,
		Amount:       np.Amount,
		Status:       np.Status,
		PaymentDate:  paymentDate,
		ReceivedByID: np.ReceivedByID,
		Notes:        np.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return svc.repo.CreatePayment(pmt)
}

func (svc *Service) Filter(filter QueryFilter) ([]Payment, error) {
	filter.Status = core.CleanString(filter.Status, true /* lower */)
	return svc.repo.FilterPayments(filter)
}

func (svc *Service) GetByID(id int) (Payment, error) {
	return svc.repo.GetPaymentByID(id)
}

// Update modifies a payment and, when the update leaves the record paid with
// no prior notification, sends the parent a "fee received" SMS exactly once.
// The trigger is edge-based: re-saving an already-notified paid record, or
// moving to any other status, never re-sends.
func (svc *Service) Update(id int, up UpdatePayment) (Payment, error) {
	orig, err := svc.repo.GetPaymentByID(id)
	if err != nil {
		return Payment{}, err
	}
	if err := up.Validate(orig); err != nil {
		return Payment{}, err
	}

	paymentDate, err := parseDate(up.PaymentDate)
	if err != nil {
		return Payment{}, pkgerrors.Wrap(err, "parsing payment date")
	}

	pmt := Payment{
		ID:           orig.ID,
		StudentID:    orig.StudentID,
		ClassID:      orig.ClassID,
		Month:        up.Month,
		Year:         *up.Year,
		Amount:       *up.Amount,
		Status:       up.Status,
		PaymentDate:  paymentDate,
		ReceivedByID: up.ReceivedByID,
		SMSSent:      orig.SMSSent,
		Notes:        *up.Notes,
		UpdatedAt:    time.Now().UTC(),
	}
	pmt, err = svc.repo.UpdatePayment(pmt)
	if err != nil {
		return Payment{}, err
	}

	if pmt.Status == StatusPaid && !pmt.SMSSent {
		pmt.SMSSent = svc.notifyPaid(pmt)
		if err := svc.repo.SetPaymentSMSSent(pmt.ID, pmt.SMSSent); err != nil {
			svc.logger.Error(fmt.Sprintf("updating sms_sent on payment %d: %v", pmt.ID, err), err)
		}
	}
	return pmt, nil
}

// notifyPaid sends the parent-facing "fee received" SMS, plus an email receipt
// when a parent email is on file. Only the SMS outcome is recorded.
func (svc *Service) notifyPaid(pmt Payment) bool {
	st, err := svc.students.GetByID(pmt.StudentID)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("finding student %d for payment notification: %v", pmt.StudentID, err), err)
		return false
	}

	sent := svc.sms.Send(st.ParentPhone, core.PaymentSMS(pmt.Month, pmt.Year))

	if st.ParentEmail != "" {
		svc.mail.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: st.ParentName, Address: st.ParentEmail}},
			Subject: "Fee payment received",
			Body: fmt.Sprintf(
				"Dear %s,\n\n%s\nAmount received: %.2f.\n\nThank you.",
				st.ParentName, core.PaymentSMS(pmt.Month, pmt.Year), pmt.Amount,
			),
		})
	}
	return sent
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeletePaymentsByID(ids...)
}

func (svc *Service) Outstanding() ([]Payment, error) {
	return svc.repo.QueryOutstandingPayments()
}

// MonthlyIncome sums paid records for the given month and year. Month
// matching is case-insensitive against the canonical lowercase name set.
func (svc *Service) MonthlyIncome(month string, year int) (MonthlyIncomeReport, error) {
	month = CleanMonth(month)
	payments, err := svc.repo.QueryPaidPayments(month, year)
	if err != nil {
		return MonthlyIncomeReport{}, pkgerrors.Wrap(err, "querying paid payments")
	}
	if payments == nil {
		payments = []Payment{}
	}

	var total float64
	for _, pmt := range payments {
		total += pmt.Amount
	}
	return MonthlyIncomeReport{
		Month:         month,
		Year:          year,
		TotalPayments: len(payments),
		TotalIncome:   core.Round2(total),
		Payments:      payments,
	}, nil
}
