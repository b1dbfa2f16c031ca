package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/usecase/fundops"
)

func TestCreateMember_UnknownRole_Returns422(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	mh := NewMemberHandler(svc)

	rec := postJSON(t, e, "/members", map[string]any{
		"name": "Jane Doe",
		"role": "astronaut",
	}, mh.CreateMember)

	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateMember_BadEmail_WarnsThenAccepts(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	mh := NewMemberHandler(svc)

	body := map[string]any{
		"name":  "Jane Doe",
		"role":  "driver",
		"email": "not-an-email",
	}
	rec := postJSON(t, e, "/members", body, mh.CreateMember)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409, body=%s", rec.Code, rec.Body.String())
	}

	body["accept_warnings"] = true
	rec = postJSON(t, e, "/members", body, mh.CreateMember)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("accepted resubmit status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
}

func TestSuspendReactivateMember(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	m := createMember(t, e, svc, "assistant", handlerNow.AddDate(-1, 0, 0))
	mh := NewMemberHandler(svc)

	rec := postJSON(t, e, "/members/:member_id/suspend", nil, mh.SuspendMember, "member_id", m.MemberID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("suspend status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var dto fundops.MemberDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.Status != "suspended" {
		t.Fatalf("status = %s, want suspended", dto.Status)
	}

	rec = postJSON(t, e, "/members/:member_id/reactivate", nil, mh.ReactivateMember, "member_id", m.MemberID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("reactivate status = %d, body=%s", rec.Code, rec.Body.String())
	}
}

func TestCashOutMember_ReturnsPayout(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	m := createMember(t, e, svc, "driver", handlerNow.AddDate(-2, 0, 0))
	ph := NewPaymentHandler(svc)
	mh := NewMemberHandler(svc)

	rec := postJSON(t, e, "/payments", map[string]any{
		"member_id": m.MemberID,
		"amount":    30000,
		"paid_at":   handlerNow.AddDate(0, -6, 0).Format("2006-01-02"),
	}, ph.CreatePayment)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("payment status = %d, body=%s", rec.Code, rec.Body.String())
	}

	// Active members cannot cash out yet.
	rec = postJSON(t, e, "/members/:member_id/cashout", nil, mh.CashOutMember, "member_id", m.MemberID)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("active cashout status = %d, want 422, body=%s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, e, "/members/:member_id/suspend", nil, mh.SuspendMember, "member_id", m.MemberID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("suspend status = %d, body=%s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, e, "/members/:member_id/cashout", nil, mh.CashOutMember, "member_id", m.MemberID)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("cashout status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var dto fundops.CashOutDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	// 30,000 contributions at 5% annual interest
	if !dto.Amount.Equal(decimal.NewFromInt(31500)) {
		t.Fatalf("payout = %s, want 31500", dto.Amount)
	}

	// Terminal: a second cash-out is rejected outright.
	rec = postJSON(t, e, "/members/:member_id/cashout", nil, mh.CashOutMember, "member_id", m.MemberID)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("second cashout status = %d, want 422", rec.Code)
	}
}

func TestDeleteMember_WithActiveLoan_Returns422(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	m := createMember(t, e, svc, "driver", handlerNow.AddDate(-2, 0, 0))
	lh := NewLoanHandler(svc)
	mh := NewMemberHandler(svc)

	rec := postJSON(t, e, "/loans", map[string]any{
		"member_id":   m.MemberID,
		"amount":      10000,
		"term_months": 3,
	}, lh.CreateLoan)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("loan status = %d, body=%s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(stdhttp.MethodDelete, "/members/x", nil)
	rec2 := httptest.NewRecorder()
	c := e.NewContext(req, rec2)
	c.SetParamNames("member_id")
	c.SetParamValues(m.MemberID)
	if err := mh.DeleteMember(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec2.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("delete status = %d, want 422, body=%s", rec2.Code, rec2.Body.String())
	}
}

func TestDeleteMember_NotFound_Returns404(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "250000")
	mh := NewMemberHandler(svc)

	req := httptest.NewRequest(stdhttp.MethodDelete, "/members/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("member_id")
	c.SetParamValues("00000000000000000000000000000000")
	if err := mh.DeleteMember(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
