package fundops

import (
	"context"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/fund"
	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/uow"
	"staff-welfare-fund/internal/usecase/calc"
	"staff-welfare-fund/internal/usecase/rules"
	"staff-welfare-fund/pkg/id"
)

// ApplyAnnualInterest credits one interest pass on the current fund balance
// at the configured annual rate.
func (s *Service) ApplyAnnualInterest(ctx context.Context) (*InterestDTO, error) {
	var dto *InterestDTO
	err := s.mutate(ctx, func(r uow.Repos) error {
		settings, err := r.Settings.Get(ctx)
		if err != nil {
			return err
		}
		entries, err := r.Ledger.ListOrdered(ctx)
		if err != nil {
			return err
		}

		balance := calc.FundBalance(entries, settings)
		interest := calc.AnnualInterest(balance, settings.AnnualRate)
		if interest.Sign() <= 0 {
			return &rules.ValidationError{Field: "fund", Message: "has no positive interest to apply"}
		}

		now := s.now()
		e := &ledger.Entry{
			EntryID:    id.NewID32(),
			Kind:       ledger.KindInterestApplied,
			Amount:     interest,
			OccurredAt: now,
		}
		if err := r.Ledger.Create(ctx, e); err != nil {
			return err
		}
		settings.InterestAccrued = settings.InterestAccrued.Add(interest)
		if err := r.Settings.Save(ctx, settings); err != nil {
			return err
		}
		if err := s.engine.RelevelLedger(ctx, r); err != nil {
			return err
		}
		dto = &InterestDTO{Amount: interest, InterestAccrued: settings.InterestAccrued, AppliedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// CashOutMember pays a departing member their lifetime contributions plus
// one-time simple interest and retires them from the fund for good.
func (s *Service) CashOutMember(ctx context.Context, memberID string) (*CashOutDTO, error) {
	var dto *CashOutDTO
	err := s.mutate(ctx, func(r uow.Repos) error {
		// Settle the contribution total before paying it out.
		m, err := s.engine.RefreshMember(ctx, r, memberID)
		if err != nil {
			return orNotFound(err, member.ErrNotFound)
		}
		active, err := r.Loans.ListActiveByMemberID(ctx, memberID)
		if err != nil {
			return err
		}
		if verr := rules.ValidateCashOut(m, len(active)); verr != nil {
			return verr
		}
		settings, err := r.Settings.Get(ctx)
		if err != nil {
			return err
		}

		amount := calc.MemberCashOut(m.TotalContributions, settings.AnnualRate)
		m.CashOutAmount = &amount
		m.Status = member.StatusInactive
		if err := r.Members.Save(ctx, m); err != nil {
			return err
		}

		e := &ledger.Entry{
			EntryID:    id.NewID32(),
			Kind:       ledger.KindCashOut,
			Amount:     amount,
			MemberID:   m.MemberID,
			OccurredAt: s.now(),
		}
		if err := r.Ledger.Create(ctx, e); err != nil {
			return err
		}
		if err := s.engine.RelevelLedger(ctx, r); err != nil {
			return err
		}
		dto = &CashOutDTO{MemberID: m.MemberID, Amount: amount, Status: string(m.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// RecordSponsorInvestment adds fresh sponsor capital to the fund.
func (s *Service) RecordSponsorInvestment(ctx context.Context, amount decimal.Decimal) (*SponsorDTO, error) {
	return s.sponsorEvent(ctx, ledger.KindSponsorInvestment, amount)
}

// RecordSponsorWithdrawal pays sponsor capital back out, capped by what the
// sponsor still has in.
func (s *Service) RecordSponsorWithdrawal(ctx context.Context, amount decimal.Decimal) (*SponsorDTO, error) {
	return s.sponsorEvent(ctx, ledger.KindSponsorWithdrawal, amount)
}

func (s *Service) sponsorEvent(ctx context.Context, kind ledger.Kind, amount decimal.Decimal) (*SponsorDTO, error) {
	if amount.Sign() <= 0 {
		return nil, &rules.ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	var dto *SponsorDTO
	err := s.mutate(ctx, func(r uow.Repos) error {
		settings, err := r.Settings.Get(ctx)
		if err != nil {
			return err
		}
		switch kind {
		case ledger.KindSponsorInvestment:
			settings.SponsorRemaining = settings.SponsorRemaining.Add(amount)
		case ledger.KindSponsorWithdrawal:
			if amount.GreaterThan(settings.SponsorRemaining) {
				return fund.ErrSponsorInsufficient
			}
			settings.SponsorRemaining = settings.SponsorRemaining.Sub(amount)
		}
		if err := r.Settings.Save(ctx, settings); err != nil {
			return err
		}

		e := &ledger.Entry{
			EntryID:    id.NewID32(),
			Kind:       kind,
			Amount:     amount,
			OccurredAt: s.now(),
		}
		if err := r.Ledger.Create(ctx, e); err != nil {
			return err
		}
		if err := s.engine.RelevelLedger(ctx, r); err != nil {
			return err
		}
		dto = &SponsorDTO{Kind: string(kind), Amount: amount, SponsorRemaining: settings.SponsorRemaining}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ReconcileAll re-derives every cached figure in the system. The sync
// collaborator calls this after a last-write-wins batch of external changes
// lands.
func (s *Service) ReconcileAll(ctx context.Context) error {
	return s.mutate(ctx, func(r uow.Repos) error {
		members, err := r.Members.List(ctx)
		if err != nil {
			return err
		}
		for _, m := range members {
			if _, err := s.engine.RefreshMember(ctx, r, m.MemberID); err != nil {
				return err
			}
			loans, err := r.Loans.ListByMemberID(ctx, m.MemberID)
			if err != nil {
				return err
			}
			for _, l := range loans {
				if _, err := s.engine.RefreshLoan(ctx, r, l.LoanID); err != nil {
					return err
				}
			}
		}
		return s.engine.RelevelLedger(ctx, r)
	})
}
