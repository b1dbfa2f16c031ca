package fund

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrSettingsMissing     = errors.New("fund settings not initialised")
	ErrSponsorInsufficient = errors.New("sponsor withdrawal exceeds remaining investment")
)

// Settings is the singleton fund configuration row.
type Settings struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`

	InitialInvestment decimal.Decimal `gorm:"type:decimal(18,2)" json:"initial_investment"`
	// Un-withdrawn portion of everything the sponsor has put in.
	SponsorRemaining decimal.Decimal `gorm:"type:decimal(18,2)" json:"sponsor_remaining"`
	// Cumulative interest credited to the fund so far.
	InterestAccrued decimal.Decimal `gorm:"type:decimal(18,2)" json:"interest_accrued"`

	AnnualRate decimal.Decimal `gorm:"type:decimal(6,4)" json:"annual_rate"`

	// Soft-warning thresholds; breaches require explicit user confirmation.
	UtilizationWarnPct decimal.Decimal `gorm:"type:decimal(6,2)" json:"utilization_warn_pct"`
	MinBalanceWarn     decimal.Decimal `gorm:"type:decimal(18,2)" json:"min_balance_warn"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Settings) TableName() string { return "fund_settings" }

// DefaultSettings seeds a fresh fund with the stock thresholds.
func DefaultSettings(initial decimal.Decimal, annualRate decimal.Decimal) *Settings {
	return &Settings{
		InitialInvestment:  initial,
		SponsorRemaining:   initial,
		InterestAccrued:    decimal.Zero,
		AnnualRate:         annualRate,
		UtilizationWarnPct: decimal.NewFromInt(60),
		MinBalanceWarn:     decimal.NewFromInt(50_000),
	}
}
