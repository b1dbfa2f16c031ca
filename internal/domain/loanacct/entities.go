package loanacct

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("loan not found")
	ErrNotActive        = errors.New("loan is not active")
	ErrOutstandingDebt  = errors.New("loan still has an outstanding balance")
	ErrAlreadyCompleted = errors.New("loan already completed")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Loan struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID   string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	MemberID string `gorm:"size:32;index:idx_loans_member_active" json:"member_id"`

	Principal decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	// Derived cache: principal minus the loan portions of all payments on
	// this loan, clamped to [0, principal]. Only the reconcile engine writes it.
	Balance decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`

	TermMonths         int             `gorm:"column:term_months" json:"term_months"`
	MonthlyInstallment decimal.Decimal `gorm:"type:decimal(18,2)" json:"monthly_installment"`
	IssueDate          time.Time       `gorm:"type:date" json:"issue_date"`

	Status      Status     `gorm:"type:enum('active','completed');default:'active'" json:"status"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
