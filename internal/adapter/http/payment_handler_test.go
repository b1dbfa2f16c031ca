package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/usecase/fundops"
)

func TestCreatePayment_Contribution(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	m := createMember(t, e, svc, "assistant", handlerNow.AddDate(-1, 0, 0))
	ph := NewPaymentHandler(svc)

	rec := postJSON(t, e, "/payments", map[string]any{
		"member_id": m.MemberID,
		"amount":    5000,
		"method":    "payroll",
	}, ph.CreatePayment)

	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var dto fundops.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.Kind != "contribution" || !dto.ContributionPortion.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestCreatePayment_RepaymentOverpay_Returns422(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	m := createMember(t, e, svc, "driver", handlerNow.AddDate(-2, 0, 0))
	lh := NewLoanHandler(svc)
	ph := NewPaymentHandler(svc)

	rec := postJSON(t, e, "/loans", map[string]any{
		"member_id":   m.MemberID,
		"amount":      10000,
		"term_months": 3,
	}, lh.CreateLoan)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("loan status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var loan fundops.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &loan); err != nil {
		t.Fatalf("bad json: %v", err)
	}

	// Pay the balance down to 2,000, then try to overpay the remainder.
	rec = postJSON(t, e, "/payments", map[string]any{
		"member_id": m.MemberID,
		"loan_id":   loan.LoanID,
		"amount":    8000,
	}, ph.CreatePayment)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("repayment status = %d, body=%s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, e, "/payments", map[string]any{
		"member_id": m.MemberID,
		"loan_id":   loan.LoanID,
		"amount":    2500,
	}, ph.CreatePayment)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("overpay status = %d, want 422, body=%s", rec.Code, rec.Body.String())
	}
}

func TestEditPayment_RewritesAmount(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	m := createMember(t, e, svc, "assistant", handlerNow.AddDate(-1, 0, 0))
	ph := NewPaymentHandler(svc)

	rec := postJSON(t, e, "/payments", map[string]any{
		"member_id": m.MemberID,
		"amount":    5000,
	}, ph.CreatePayment)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("create status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var created fundops.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad json: %v", err)
	}

	req := httptest.NewRequest(stdhttp.MethodPut, "/payments/x", mustJSON(map[string]any{
		"amount": 3000,
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec2 := httptest.NewRecorder()
	c := e.NewContext(req, rec2)
	c.SetParamNames("payment_id")
	c.SetParamValues(created.PaymentID)
	if err := ph.EditPayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec2.Code != stdhttp.StatusOK {
		t.Fatalf("edit status = %d, body=%s", rec2.Code, rec2.Body.String())
	}
	var edited fundops.PaymentDTO
	if err := json.Unmarshal(rec2.Body.Bytes(), &edited); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !edited.Amount.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("amount = %s, want 3000", edited.Amount)
	}
	if !edited.PaidAt.Equal(created.PaidAt) {
		t.Fatalf("paid_at changed: %v -> %v", created.PaidAt, edited.PaidAt)
	}
}

func TestDeletePayment(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	m := createMember(t, e, svc, "assistant", handlerNow.AddDate(-1, 0, 0))
	ph := NewPaymentHandler(svc)

	rec := postJSON(t, e, "/payments", map[string]any{
		"member_id": m.MemberID,
		"amount":    5000,
	}, ph.CreatePayment)
	var created fundops.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad json: %v", err)
	}

	req := httptest.NewRequest(stdhttp.MethodDelete, "/payments/x", nil)
	rec2 := httptest.NewRecorder()
	c := e.NewContext(req, rec2)
	c.SetParamNames("payment_id")
	c.SetParamValues(created.PaymentID)
	if err := ph.DeletePayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec2.Code != stdhttp.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec2.Code)
	}

	// Gone now.
	rec3 := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(stdhttp.MethodDelete, "/payments/x", nil), rec3)
	c.SetParamNames("payment_id")
	c.SetParamValues(created.PaymentID)
	if err := ph.DeletePayment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec3.Code != stdhttp.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec3.Code)
	}
}
