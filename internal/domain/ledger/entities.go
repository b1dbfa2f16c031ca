package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("ledger entry not found")

type Kind string

const (
	KindContribution      Kind = "contribution"
	KindLoanDisbursement  Kind = "loan_disbursement"
	KindLoanRepayment     Kind = "loan_repayment"
	KindInterestApplied   Kind = "interest_applied"
	KindCashOut           Kind = "cash_out"
	KindSponsorInvestment Kind = "sponsor_investment"
	KindSponsorWithdrawal Kind = "sponsor_withdrawal"
)

// Sign is the direction of the fund-balance impact for this kind.
func (k Kind) Sign() int {
	switch k {
	case KindLoanDisbursement, KindCashOut, KindSponsorWithdrawal:
		return -1
	default:
		return +1
	}
}

// Entry is one row per fund-affecting event. Amount is a positive magnitude;
// the signed impact follows from Kind. The two *After fields are snapshots
// recomputed by the reconcile engine, never authoritative inputs.
type Entry struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	EntryID string `gorm:"size:32;uniqueIndex:ux_ledger_entry_id_active" json:"entry_id"`
	Kind    Kind   `gorm:"type:enum('contribution','loan_disbursement','loan_repayment','interest_applied','cash_out','sponsor_investment','sponsor_withdrawal')" json:"kind"`

	Amount decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`

	// Empty for sponsor-level events.
	MemberID string `gorm:"size:32;index:idx_ledger_member" json:"member_id,omitempty"`
	LoanID   string `gorm:"size:32;index:idx_ledger_loan" json:"loan_id,omitempty"`
	// Links a payment-backed entry to its payment so edits and deletes can
	// locate the row.
	PaymentID string `gorm:"size:32;index:idx_ledger_payment" json:"payment_id,omitempty"`

	OccurredAt time.Time `gorm:"column:occurred_at;index:idx_ledger_occurred" json:"occurred_at"`

	FundBalanceAfter      decimal.Decimal `gorm:"type:decimal(18,2)" json:"fund_balance_after"`
	LoansOutstandingAfter decimal.Decimal `gorm:"type:decimal(18,2)" json:"loans_outstanding_after"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Entry) TableName() string { return "ledger_entries" }

// SignedImpact is the amount with the kind's direction applied.
func (e *Entry) SignedImpact() decimal.Decimal {
	if e.Kind.Sign() < 0 {
		return e.Amount.Neg()
	}
	return e.Amount
}
