package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM columns) ---

type memberSQLite struct {
	ID                 uint64           `gorm:"primaryKey;column:id"`
	MemberID           string           `gorm:"size:32;column:member_id"`
	Name               string           `gorm:"column:name"`
	Role               string           `gorm:"type:text;column:role"`
	Email              string           `gorm:"column:email"`
	Phone              string           `gorm:"column:phone"`
	JoinDate           time.Time        `gorm:"column:join_date"`
	Status             string           `gorm:"type:text;column:status"`
	TotalContributions decimal.Decimal  `gorm:"type:numeric;column:total_contributions"`
	CashOutAmount      *decimal.Decimal `gorm:"type:numeric;column:cash_out_amount"`
	LimitOverride      *decimal.Decimal `gorm:"type:numeric;column:limit_override"`
	TermOverrideMonths *int             `gorm:"column:term_override_months"`
	OverrideReason     string           `gorm:"column:override_reason"`
	OverrideApprovedAt *time.Time       `gorm:"column:override_approved_at"`
	CreatedAt          time.Time        `gorm:"column:created_at"`
	UpdatedAt          time.Time        `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"column:deleted_at"`
}

func (memberSQLite) TableName() string { return "members" }

type loanSQLite struct {
	ID                 uint64          `gorm:"primaryKey;column:id"`
	LoanID             string          `gorm:"size:32;column:loan_id"`
	MemberID           string          `gorm:"size:32;column:member_id"`
	Principal          decimal.Decimal `gorm:"type:numeric;column:principal"`
	Balance            decimal.Decimal `gorm:"type:numeric;column:balance"`
	TermMonths         int             `gorm:"column:term_months"`
	MonthlyInstallment decimal.Decimal `gorm:"type:numeric;column:monthly_installment"`
	IssueDate          time.Time       `gorm:"column:issue_date"`
	Status             string          `gorm:"type:text;column:status"`
	CompletedAt        *time.Time      `gorm:"column:completed_at"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type paymentSQLite struct {
	ID                  uint64          `gorm:"primaryKey;column:id"`
	PaymentID           string          `gorm:"size:32;column:payment_id"`
	MemberID            string          `gorm:"size:32;column:member_id"`
	LoanID              string          `gorm:"size:32;column:loan_id"`
	Amount              decimal.Decimal `gorm:"type:numeric;column:amount"`
	Kind                string          `gorm:"type:text;column:kind"`
	ContributionPortion decimal.Decimal `gorm:"type:numeric;column:contribution_portion"`
	LoanPortion         decimal.Decimal `gorm:"type:numeric;column:loan_portion"`
	PaidAt              time.Time       `gorm:"column:paid_at"`
	Method              string          `gorm:"column:method"`
	Notes               string          `gorm:"column:notes"`
	CreatedAt           time.Time       `gorm:"column:created_at"`
	UpdatedAt           time.Time       `gorm:"column:updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (paymentSQLite) TableName() string { return "payments" }

type entrySQLite struct {
	ID                    uint64          `gorm:"primaryKey;column:id"`
	EntryID               string          `gorm:"size:32;column:entry_id"`
	Kind                  string          `gorm:"type:text;column:kind"`
	Amount                decimal.Decimal `gorm:"type:numeric;column:amount"`
	MemberID              string          `gorm:"size:32;column:member_id"`
	LoanID                string          `gorm:"size:32;column:loan_id"`
	PaymentID             string          `gorm:"size:32;column:payment_id"`
	OccurredAt            time.Time       `gorm:"column:occurred_at"`
	FundBalanceAfter      decimal.Decimal `gorm:"type:numeric;column:fund_balance_after"`
	LoansOutstandingAfter decimal.Decimal `gorm:"type:numeric;column:loans_outstanding_after"`
	CreatedAt             time.Time       `gorm:"column:created_at"`
	UpdatedAt             time.Time       `gorm:"column:updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (entrySQLite) TableName() string { return "ledger_entries" }

type settingsSQLite struct {
	ID                 uint64          `gorm:"primaryKey;column:id"`
	InitialInvestment  decimal.Decimal `gorm:"type:numeric;column:initial_investment"`
	SponsorRemaining   decimal.Decimal `gorm:"type:numeric;column:sponsor_remaining"`
	InterestAccrued    decimal.Decimal `gorm:"type:numeric;column:interest_accrued"`
	AnnualRate         decimal.Decimal `gorm:"type:numeric;column:annual_rate"`
	UtilizationWarnPct decimal.Decimal `gorm:"type:numeric;column:utilization_warn_pct"`
	MinBalanceWarn     decimal.Decimal `gorm:"type:numeric;column:min_balance_warn"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
}

func (settingsSQLite) TableName() string { return "fund_settings" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, never the enum-typed domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&memberSQLite{}, &loanSQLite{}, &paymentSQLite{}, &entrySQLite{}, &settingsSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
