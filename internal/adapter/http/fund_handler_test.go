package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/usecase/calc"
	"staff-welfare-fund/internal/usecase/fundops"
)

func TestGetSummary(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "200000")
	m := createMember(t, e, svc, "driver", handlerNow.AddDate(-2, 0, 0))
	ph := NewPaymentHandler(svc)
	fh := NewFundHandler(svc)

	rec := postJSON(t, e, "/payments", map[string]any{
		"member_id": m.MemberID,
		"amount":    10000,
	}, ph.CreatePayment)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("payment status = %d, body=%s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(stdhttp.MethodGet, "/fund/summary", nil)
	rec2 := httptest.NewRecorder()
	c := e.NewContext(req, rec2)
	if err := fh.GetSummary(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec2.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body=%s", rec2.Code, rec2.Body.String())
	}
	var summary calc.FundSummary
	if err := json.Unmarshal(rec2.Body.Bytes(), &summary); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !summary.FundBalance.Equal(decimal.NewFromInt(210000)) {
		t.Fatalf("balance = %s, want 210000", summary.FundBalance)
	}
	if summary.MemberCount != 1 {
		t.Fatalf("member count = %d, want 1", summary.MemberCount)
	}
}

func TestApplyInterest(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "200000")
	fh := NewFundHandler(svc)

	rec := postJSON(t, e, "/fund/interest", nil, fh.ApplyInterest)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var dto fundops.InterestDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	// 5% of 200,000
	if !dto.Amount.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("interest = %s, want 10000", dto.Amount)
	}
}

func TestSponsorWithdrawal_ExceedsRemaining_Returns422(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "50000")
	fh := NewFundHandler(svc)

	rec := postJSON(t, e, "/fund/sponsor/withdrawals", map[string]any{
		"amount": 60000,
	}, fh.SponsorWithdrawal)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body=%s", rec.Code, rec.Body.String())
	}
}

func TestSponsorInvestment_RaisesRemaining(t *testing.T) {
	e := newEchoWithValidator()
	svc := newTestService(t, "50000")
	fh := NewFundHandler(svc)

	rec := postJSON(t, e, "/fund/sponsor/investments", map[string]any{
		"amount": 25000,
	}, fh.SponsorInvestment)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var dto fundops.SponsorDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !dto.SponsorRemaining.Equal(decimal.NewFromInt(75000)) {
		t.Fatalf("remaining = %s, want 75000", dto.SponsorRemaining)
	}
}
