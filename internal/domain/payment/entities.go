package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("payment not found")

type Kind string

const (
	KindContribution  Kind = "contribution"
	KindLoanRepayment Kind = "loan_repayment"
)

// Payment rows can be edited and soft-deleted after the fact; every write
// path must re-derive the owning member's and loan's cached figures.
type Payment struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string `gorm:"size:32;uniqueIndex:ux_payments_payment_id_active" json:"payment_id"`
	MemberID  string `gorm:"size:32;index:idx_payments_member_active" json:"member_id"`
	// Empty unless the payment repays a loan.
	LoanID string `gorm:"size:32;index:idx_payments_loan_active" json:"loan_id,omitempty"`

	Amount decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Kind   Kind            `gorm:"type:enum('contribution','loan_repayment')" json:"kind"`

	// Mutually exclusive split of Amount: exactly one of the two is non-zero.
	ContributionPortion decimal.Decimal `gorm:"type:decimal(18,2)" json:"contribution_portion"`
	LoanPortion         decimal.Decimal `gorm:"type:decimal(18,2)" json:"loan_portion"`

	PaidAt time.Time `gorm:"column:paid_at" json:"paid_at"`
	Method string    `gorm:"size:32" json:"method"`
	Notes  string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Payment) TableName() string { return "payments" }
