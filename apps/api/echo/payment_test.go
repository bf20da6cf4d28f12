package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yazi0/SmartTuitionManager/core/payment"
	"github.com/Yazi0/SmartTuitionManager/core/user"
)

func Test_paymentApi_create(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "Boss", "boss", user.RoleOwner)
	ownerTkn := getToken(t, owner)
	teacherTkn := getToken(t, env.createUser(t, "Teach", "teach", user.RoleTeacher))

	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)

	body := marshallObj(t, payment.NewPayment{
		StudentID: st.ID,
		ClassID:   cls.ID,
		Month:     "March",
		Year:      2026,
		Amount:    3000,
	})

	tests := []httpTest{
		{name: "no token", body: body, wantCode: http.StatusUnauthorized},
		{name: "teacher forbidden", token: teacherTkn, body: body, wantCode: http.StatusForbidden},
		{name: "empty payload", token: ownerTkn, body: []byte(`{}`), wantCode: http.StatusBadRequest},
		{name: "bad month", token: ownerTkn, body: []byte(`{"student":1,"class_fee":1,"month":"smarch","year":2026,"amount":10}`), wantCode: http.StatusBadRequest},
		{name: "ok", token: ownerTkn, body: body, wantCode: http.StatusCreated},
		{name: "duplicate month", token: ownerTkn, body: body, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/payments", tt.token, tt.body)
			env.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if tt.name == "ok" {
				var pmt payment.Payment
				decodeBody(t, rec, &pmt)
				assert.Equal(t, "march", pmt.Month)
				assert.Equal(t, payment.StatusPending, pmt.Status)
				if assert.NotNil(t, pmt.ReceivedByID) {
					assert.Equal(t, owner.ID, *pmt.ReceivedByID) // defaults to the acting user
				}
			}
		})
	}
}

func Test_paymentApi_update(t *testing.T) {
	env := newTestEnv(t)
	ownerTkn := getToken(t, env.createUser(t, "Boss", "boss", user.RoleOwner))

	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)
	np := payment.NewPayment{StudentID: st.ID, ClassID: cls.ID, Month: "march", Year: 2026, Amount: 3000}
	if err := np.Validate(); err != nil {
		t.Fatalf("NewPayment.Validate() failed: %v", err)
	}
	pmt, err := env.paymentSvc.Create(np)
	if err != nil {
		t.Fatalf("creating payment failed: %v", err)
	}

	body := marshallObj(t, payment.UpdatePayment{Status: payment.StatusPaid, PaymentDate: "2026-03-05"})
	req, rec := newAuthRequest(http.MethodPut, "/v1/payments/"+itoa(pmt.ID), ownerTkn, body)
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated payment.Payment
	decodeBody(t, rec, &updated)
	assert.Equal(t, payment.StatusPaid, updated.Status)
	assert.True(t, updated.SMSSent)
	assert.Equal(t, 1, env.sms.SentCount())

	// unknown payment
	req, rec = newAuthRequest(http.MethodPut, "/v1/payments/999", ownerTkn, body)
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_paymentApi_getDelete(t *testing.T) {
	env := newTestEnv(t)
	ownerTkn := getToken(t, env.createUser(t, "Boss", "boss", user.RoleOwner))

	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)
	np := payment.NewPayment{StudentID: st.ID, ClassID: cls.ID, Month: "march", Year: 2026, Amount: 3000}
	if err := np.Validate(); err != nil {
		t.Fatalf("NewPayment.Validate() failed: %v", err)
	}
	pmt, err := env.paymentSvc.Create(np)
	if err != nil {
		t.Fatalf("creating payment failed: %v", err)
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/payments/"+itoa(pmt.ID), ownerTkn)
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/payments/999", ownerTkn)
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req, rec = newAuthRequest(http.MethodDelete, "/v1/payments/"+itoa(pmt.ID), ownerTkn)
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err = env.paymentSvc.GetByID(pmt.ID)
	assert.Equal(t, payment.ErrNotFound, err)
}

func Test_paymentApi_query(t *testing.T) {
	env := newTestEnv(t)
	ownerTkn := getToken(t, env.createUser(t, "Boss", "boss", user.RoleOwner))
	teacherTkn := getToken(t, env.createUser(t, "Teach", "teach", user.RoleTeacher))
	studentTkn := getToken(t, env.createUser(t, "Kid", "kiddo", user.RoleStudent))

	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)
	other := env.createStudent(t, "John Phiri", &cls.ID)

	seed := []payment.NewPayment{
		{StudentID: st.ID, ClassID: cls.ID, Month: "january", Year: 2026, Amount: 3000, Status: payment.StatusPaid},
		{StudentID: st.ID, ClassID: cls.ID, Month: "february", Year: 2026, Amount: 3000},
		{StudentID: other.ID, ClassID: cls.ID, Month: "january", Year: 2026, Amount: 3000, Status: payment.StatusOverdue},
	}
	for _, np := range seed {
		if err := np.Validate(); err != nil {
			t.Fatalf("NewPayment.Validate() failed: %v", err)
		}
		if _, err := env.paymentSvc.Create(np); err != nil {
			t.Fatalf("creating payment failed: %v", err)
		}
	}

	tests := []struct {
		httpTest
		wantLen int
	}{
		{httpTest{name: "all", path: "/v1/payments", token: ownerTkn, wantCode: http.StatusOK}, 3},
		{httpTest{name: "teacher reads", path: "/v1/payments", token: teacherTkn, wantCode: http.StatusOK}, 3},
		{httpTest{name: "student forbidden", path: "/v1/payments", token: studentTkn, wantCode: http.StatusForbidden}, 0},
		{httpTest{name: "by student", path: "/v1/payments?student_id=" + itoa(st.ID), token: ownerTkn, wantCode: http.StatusOK}, 2},
		{httpTest{name: "by status", path: "/v1/payments?status=paid", token: ownerTkn, wantCode: http.StatusOK}, 1},
		{httpTest{name: "outstanding", path: "/v1/payments/outstanding", token: teacherTkn, wantCode: http.StatusOK}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.server.ServeHTTP(rec, req)
			checkCode(t, tt.httpTest, rec)

			if rec.Code == http.StatusOK {
				var payments []payment.Payment
				decodeBody(t, rec, &payments)
				assert.Len(t, payments, tt.wantLen)
			}
		})
	}
}

func Test_paymentApi_monthlyIncome(t *testing.T) {
	env := newTestEnv(t)
	ownerTkn := getToken(t, env.createUser(t, "Boss", "boss", user.RoleOwner))

	cls := env.createClass(t, "Grade 10 Math", 3000, nil)
	st := env.createStudent(t, "Jane Banda", &cls.ID)
	seed := []payment.NewPayment{
		{StudentID: st.ID, ClassID: cls.ID, Month: "march", Year: 2026, Amount: 3000, Status: payment.StatusPaid},
		{StudentID: st.ID, ClassID: cls.ID, Month: "april", Year: 2026, Amount: 3000, Status: payment.StatusPaid},
		{StudentID: st.ID, ClassID: cls.ID, Month: "may", Year: 2026, Amount: 3000},
	}
	for _, np := range seed {
		if err := np.Validate(); err != nil {
			t.Fatalf("NewPayment.Validate() failed: %v", err)
		}
		if _, err := env.paymentSvc.Create(np); err != nil {
			t.Fatalf("creating payment failed: %v", err)
		}
	}

	tests := []httpTest{
		{name: "missing params", path: "/v1/payments/monthly-income", wantCode: http.StatusBadRequest},
		{name: "missing year", path: "/v1/payments/monthly-income?month=march", wantCode: http.StatusBadRequest},
		{name: "bad year", path: "/v1/payments/monthly-income?month=march&year=lol", wantCode: http.StatusBadRequest},
		{name: "ok", path: "/v1/payments/monthly-income?month=March&year=2026", wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, ownerTkn)
			env.server.ServeHTTP(rec, req)
			checkCode(t, tt, rec)

			if rec.Code == http.StatusOK {
				var report payment.MonthlyIncomeReport
				decodeBody(t, rec, &report)
				assert.Equal(t, "march", report.Month)
				assert.Equal(t, 1, report.TotalPayments)
				assert.Equal(t, 3000.0, report.TotalIncome)
			}
		})
	}
}
