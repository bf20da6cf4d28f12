package payment

import (
	"time"

	"github.com/Yazi0/SmartTuitionManager/core"
)

const dateLayout = "2006-01-02"

// Statuses. Transitions are caller-driven; there is no automatic overdue
// detection.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// Months is the canonical lowercase month name set used as payment keys.
var Months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// CleanMonth lowers a month name to its canonical form.
func CleanMonth(month string) string {
	return core.CleanString(month, true /* lower */)
}

// Payment is one student's fee record for one class and one month.
// At most one record exists per (student, class, month, year).
type Payment struct {
	ID             int        `db:"id" json:"id"`
	StudentID      int        `db:"student_id" json:"student"`
	StudentName    string     `db:"student_name" json:"student_name"`
	ClassID        int        `db:"class_id" json:"class_fee"`
	ClassName      string     `db:"class_name" json:"class_name"`
	Month          string     `db:"month" json:"month"`
	Year           int        `db:"year" json:"year"`
	Amount         float64    `db:"amount" json:"amount"`
	Status         string     `db:"status" json:"status"`
	PaymentDate    *time.Time `db:"payment_date" json:"payment_date"`
	ReceivedByID   *int       `db:"received_by_id" json:"received_by"`
	ReceivedByName string     `db:"received_by_name" json:"received_by_name"`
	SMSSent        bool       `db:"sms_sent" json:"sms_sent"`
	Notes          string     `db:"notes" json:"notes"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"` // UTC
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"` // UTC
}

// NewPayment contains information needed to create a new Payment.
type NewPayment struct {
	StudentID    int     `json:"student" validate:"required"`
	ClassID      int     `json:"class_fee" validate:"required"`
	Month        string  `json:"month" validate:"required,oneof=january february march april may june july august september october november december"`
	Year         int     `json:"year" validate:"required,min=2000"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Status       string  `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	PaymentDate  string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	ReceivedByID *int    `json:"received_by"`
	Notes        string  `json:"notes"`
}

func (np *NewPayment) Validate() error {
	np.Month = CleanMonth(np.Month)
	np.Notes = core.CleanString(np.Notes)
	if np.Status == "" {
		np.Status = StatusPending
	}
	return core.Validate.Struct(np)
}

// UpdatePayment defines what information may be provided to modify an existing
// Payment. Absent fields keep their current values; sms_sent is never
// caller-writable.
type UpdatePayment struct {
	Month        string   `json:"month" validate:"omitempty,oneof=january february march april may june july august september october november december"`
	Year         *int     `json:"year" validate:"omitempty,min=2000"`
	Amount       *float64 `json:"amount" validate:"omitempty,gt=0"`
	Status       string   `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	PaymentDate  string   `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	ReceivedByID *int     `json:"received_by"`
	Notes        *string  `json:"notes"`
}

func (up *UpdatePayment) Validate(orig Payment) error {
	up.Month = CleanMonth(up.Month)
	if up.Month == "" {
		up.Month = orig.Month
	}
	if up.Year == nil {
		year := orig.Year
		up.Year = &year
	}
	if up.Amount == nil {
		amount := orig.Amount
		up.Amount = &amount
	}
	if up.Status == "" {
		up.Status = orig.Status
	}
	if up.PaymentDate == "" && orig.PaymentDate != nil {
		up.PaymentDate = orig.PaymentDate.Format(dateLayout)
	}
	if up.ReceivedByID == nil {
		up.ReceivedByID = orig.ReceivedByID
	}
	if up.Notes == nil {
		notes := orig.Notes
		up.Notes = &notes
	}
	return core.Validate.Struct(up)
}

// QueryFilter applies AND operation on its non-zero fields.
type QueryFilter struct {
	StudentID int
	Status    string
}

// MonthlyIncomeReport sums paid fee records for one month.
type MonthlyIncomeReport struct {
	Month         string    `json:"month"`
	Year          int       `json:"year"`
	TotalPayments int       `json:"total_payments"`
	TotalIncome   float64   `json:"total_income"`
	Payments      []Payment `json:"payments"`
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
