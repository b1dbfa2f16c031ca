// Package calc holds the pure fund computations: balances, capital,
// utilization, amortization schedules and cash-out values. Nothing here
// mutates entity state.
package calc

import (
	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/fund"
	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
)

var hundred = decimal.NewFromInt(100)

// FundBalance is the snapshot balance of the most recent ledger entry
// (occurred_at, then insertion order); with an empty ledger it falls back to
// the sponsor's initial investment.
func FundBalance(entries []*ledger.Entry, s *fund.Settings) decimal.Decimal {
	var latest *ledger.Entry
	for _, e := range entries {
		if latest == nil || after(e, latest) {
			latest = e
		}
	}
	if latest == nil {
		return s.InitialInvestment
	}
	return latest.FundBalanceAfter
}

func after(a, b *ledger.Entry) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.After(b.OccurredAt)
	}
	return a.ID > b.ID
}

// TotalCapital is the utilization denominator: initial investment plus every
// member's lifetime contributions. Deliberately capital committed, not net
// cash on hand.
func TotalCapital(s *fund.Settings, members []*member.Member) decimal.Decimal {
	total := s.InitialInvestment
	for _, m := range members {
		total = total.Add(m.TotalContributions)
	}
	return total
}

// TotalActiveLoans sums outstanding balances over active loans, straight from
// the loan entities. The ledger's running total is allowed to drift and must
// never be trusted for this figure.
func TotalActiveLoans(loans []*loanacct.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if l.Status == loanacct.StatusActive {
			total = total.Add(l.Balance)
		}
	}
	return total
}

// UtilizationPercent returns active/capital as a percentage, 0 when capital
// is not positive. Decimal division cannot produce NaN, but a non-positive
// denominator is still an anomaly the caller should log.
func UtilizationPercent(active, capital decimal.Decimal) decimal.Decimal {
	if capital.Sign() <= 0 {
		return decimal.Zero
	}
	return active.Mul(hundred).DivRound(capital, 2)
}

// MemberCashOut credits simple (not compound) interest on lifetime
// contributions, once, at exit: contributions x (1 + rate).
func MemberCashOut(contributions, rate decimal.Decimal) decimal.Decimal {
	return contributions.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
}

// AnnualInterest is the amount credited by one interest application pass.
func AnnualInterest(balance, rate decimal.Decimal) decimal.Decimal {
	if balance.Sign() <= 0 {
		return decimal.Zero
	}
	return balance.Mul(rate).Round(2)
}
