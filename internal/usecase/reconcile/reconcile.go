// Package reconcile re-derives every cached figure (ledger snapshots, loan
// balances, member contribution totals) from the authoritative records after
// a mutation, regardless of where in history the mutation landed.
package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/payment"
)

// Anomaly is a consistency finding that gets logged, never surfaced to users:
// a stale derived value beats refusing to show the fund at all.
type Anomaly struct {
	Code    string
	EntryID string
	Detail  string
}

const (
	AnomalyNegativeBalance   = "negative_fund_balance"
	AnomalyRepaymentOverflow = "repayment_exceeds_outstanding"
	AnomalyCompletedDebt     = "completed_loan_with_balance"
)

// ComputeSnapshots re-levels every entry's running snapshots in place. It
// sorts by occurred_at ascending with insertion order (numeric id) breaking
// ties, walks forward from the sponsor's initial investment applying each
// entry's signed impact, and tracks a running outstanding-loans total that
// rises on disbursements, falls on repayments and clamps at zero.
//
// The walk is idempotent: re-running it without an intervening change leaves
// every snapshot identical. Fund balances are recorded exactly even when
// negative so conservation stays checkable; the dip is reported as an anomaly.
func ComputeSnapshots(entries []*ledger.Entry, initial decimal.Decimal) []Anomaly {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].OccurredAt.Equal(entries[j].OccurredAt) {
			return entries[i].OccurredAt.Before(entries[j].OccurredAt)
		}
		return entries[i].ID < entries[j].ID
	})

	var anomalies []Anomaly
	running := initial
	outstanding := decimal.Zero
	for _, e := range entries {
		running = running.Add(e.SignedImpact())

		switch e.Kind {
		case ledger.KindLoanDisbursement:
			outstanding = outstanding.Add(e.Amount)
		case ledger.KindLoanRepayment:
			outstanding = outstanding.Sub(e.Amount)
			if outstanding.Sign() < 0 {
				anomalies = append(anomalies, Anomaly{
					Code:    AnomalyRepaymentOverflow,
					EntryID: e.EntryID,
					Detail:  "running outstanding-loans total went below zero; clamped",
				})
				outstanding = decimal.Zero
			}
		}

		if running.Sign() < 0 {
			anomalies = append(anomalies, Anomaly{
				Code:    AnomalyNegativeBalance,
				EntryID: e.EntryID,
				Detail:  "fund balance " + running.String() + " after entry",
			})
		}

		e.FundBalanceAfter = running
		e.LoansOutstandingAfter = outstanding
	}
	return anomalies
}

// LoanFigures recomputes a loan's outstanding balance from its payments:
// principal minus the loan portions, clamped to [0, principal]. The completed
// flag reports whether the balance has reached zero; the status transition
// itself is one-way and applied by the engine.
func LoanFigures(l *loanacct.Loan, pays []*payment.Payment) (decimal.Decimal, bool) {
	repaid := decimal.Zero
	for _, p := range pays {
		repaid = repaid.Add(p.LoanPortion)
	}
	balance := l.Principal.Sub(repaid)
	if balance.Sign() < 0 {
		balance = decimal.Zero
	}
	if balance.GreaterThan(l.Principal) {
		balance = l.Principal
	}
	return balance, balance.IsZero()
}

// ContributionTotal is the authoritative definition of a member's lifetime
// contributions: the sum of contribution portions over their payments. Any
// cached figure that disagrees is a bug.
func ContributionTotal(pays []*payment.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pays {
		total = total.Add(p.ContributionPortion)
	}
	return total
}
