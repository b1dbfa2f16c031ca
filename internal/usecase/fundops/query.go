package fundops

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/uow"
	"staff-welfare-fund/internal/usecase/calc"
	"staff-welfare-fund/internal/usecase/rules"
)

// QuerySummary reports the settled fund snapshot. Reads skip the writer lock:
// mutations commit atomically, so any committed state is fully reconciled.
func (s *Service) QuerySummary(ctx context.Context) (*calc.FundSummary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	var sum calc.FundSummary
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		settings, err := r.Settings.Get(ctx)
		if err != nil {
			return err
		}
		entries, err := r.Ledger.ListOrdered(ctx)
		if err != nil {
			return err
		}
		loans, err := r.Loans.ListActive(ctx)
		if err != nil {
			return err
		}
		members, err := r.Members.List(ctx)
		if err != nil {
			return err
		}
		sum = calc.Summary(settings, entries, loans, members, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, &sum)
	}
	return &sum, nil
}

// QueryLoanSchedule previews the amortization plan ahead of issuance.
func (s *Service) QueryLoanSchedule(amount decimal.Decimal, months int, start time.Time) ([]calc.ScheduleRow, error) {
	if amount.Sign() <= 0 {
		return nil, &rules.ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	if months <= 0 {
		return nil, &rules.ValidationError{Field: "months", Message: "must be greater than zero"}
	}
	if start.IsZero() {
		start = s.now()
	}
	return calc.LoanSchedule(amount, months, start), nil
}
