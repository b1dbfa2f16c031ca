package calc

import (
	"time"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/fund"
	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
)

// FundSummary is the single reporting snapshot handed to statement and
// display collaborators.
type FundSummary struct {
	FundBalance        decimal.Decimal `json:"fund_balance"`
	TotalCapital       decimal.Decimal `json:"total_capital"`
	TotalActiveLoans   decimal.Decimal `json:"total_active_loans"`
	UtilizationPercent decimal.Decimal `json:"utilization_percent"`
	InterestAccrued    decimal.Decimal `json:"interest_accrued"`
	SponsorRemaining   decimal.Decimal `json:"sponsor_remaining"`
	MemberCount        int             `json:"member_count"`
	ActiveLoanCount    int             `json:"active_loan_count"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

func Summary(s *fund.Settings, entries []*ledger.Entry, loans []*loanacct.Loan, members []*member.Member, now time.Time) FundSummary {
	active := TotalActiveLoans(loans)
	capital := TotalCapital(s, members)
	activeCount := 0
	for _, l := range loans {
		if l.Status == loanacct.StatusActive {
			activeCount++
		}
	}
	return FundSummary{
		FundBalance:        FundBalance(entries, s),
		TotalCapital:       capital,
		TotalActiveLoans:   active,
		UtilizationPercent: UtilizationPercent(active, capital),
		InterestAccrued:    s.InterestAccrued,
		SponsorRemaining:   s.SponsorRemaining,
		MemberCount:        len(members),
		ActiveLoanCount:    activeCount,
		GeneratedAt:        now.UTC(),
	}
}
