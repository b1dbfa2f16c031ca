package reconcile

import (
	"context"
	"log"
	"time"

	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/uow"
)

// Engine is the persistence-aware face of the package: each method loads the
// authoritative rows through the transaction-bound repos, recomputes, and
// writes back only what changed.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine { return &Engine{now: func() time.Time { return time.Now().UTC() }} }

// WithNow overrides the clock; tests use it to pin completion stamps.
func (e *Engine) WithNow(now func() time.Time) *Engine {
	e.now = now
	return e
}

// RelevelLedger reruns the full snapshot walk and persists entries whose
// snapshots moved. Anomalies are logged and swallowed.
func (e *Engine) RelevelLedger(ctx context.Context, r uow.Repos) error {
	settings, err := r.Settings.Get(ctx)
	if err != nil {
		return err
	}
	entries, err := r.Ledger.ListOrdered(ctx)
	if err != nil {
		return err
	}

	before := make(map[uint64][2]string, len(entries))
	for _, en := range entries {
		before[en.ID] = [2]string{en.FundBalanceAfter.String(), en.LoansOutstandingAfter.String()}
	}

	anomalies := ComputeSnapshots(entries, settings.InitialInvestment)
	for _, a := range anomalies {
		log.Printf("anomaly: %s entry=%s %s", a.Code, a.EntryID, a.Detail)
	}

	for _, en := range entries {
		if prev := before[en.ID]; prev[0] == en.FundBalanceAfter.String() && prev[1] == en.LoansOutstandingAfter.String() {
			continue
		}
		if err := r.Ledger.Save(ctx, en); err != nil {
			return err
		}
	}
	return nil
}

// RefreshLoan recomputes one loan's balance from its payments and applies the
// one-way completion transition when the balance reaches zero. A completed
// loan whose payments no longer cover the principal keeps its completed
// status (never reopened); the mismatch is logged as an anomaly.
func (e *Engine) RefreshLoan(ctx context.Context, r uow.Repos, loanID string) (*loanacct.Loan, error) {
	l, err := r.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	pays, err := r.Payments.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	balance, cleared := LoanFigures(l, pays)
	l.Balance = balance
	if cleared && l.Status == loanacct.StatusActive {
		now := e.now()
		l.Status = loanacct.StatusCompleted
		l.CompletedAt = &now
	}
	if !cleared && l.Status == loanacct.StatusCompleted {
		log.Printf("anomaly: %s loan=%s balance=%s", AnomalyCompletedDebt, l.LoanID, balance)
	}
	if err := r.Loans.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// RefreshMember recomputes one member's lifetime contribution total.
func (e *Engine) RefreshMember(ctx context.Context, r uow.Repos, memberID string) (*member.Member, error) {
	m, err := r.Members.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	pays, err := r.Payments.ListByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	m.TotalContributions = ContributionTotal(pays)
	if err := r.Members.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
