package fundops

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/uow"
	"staff-welfare-fund/internal/usecase/calc"
	"staff-welfare-fund/internal/usecase/rules"
	"staff-welfare-fund/pkg/id"
)

type CreateLoanInput struct {
	MemberID       string
	Amount         decimal.Decimal
	TermMonths     int
	IssueDate      time.Time
	AcceptWarnings bool
}

// CreateLoan validates eligibility and limits, surfaces the soft
// utilization/balance warnings unless the caller accepted them, then issues
// the loan, writes its disbursement entry and re-levels the ledger.
func (s *Service) CreateLoan(ctx context.Context, in CreateLoanInput) (*LoanDTO, []rules.Warning, error) {
	var (
		dto   *LoanDTO
		warns []rules.Warning
	)
	err := s.mutate(ctx, func(r uow.Repos) error {
		m, err := r.Members.GetByMemberID(ctx, in.MemberID)
		if err != nil {
			return orNotFound(err, member.ErrNotFound)
		}
		if verr := rules.ValidateLoanRequest(m, in.Amount, in.TermMonths, s.now()); verr != nil {
			return verr
		}

		settings, err := r.Settings.Get(ctx)
		if err != nil {
			return err
		}
		entries, err := r.Ledger.ListOrdered(ctx)
		if err != nil {
			return err
		}
		activeLoans, err := r.Loans.ListActive(ctx)
		if err != nil {
			return err
		}
		members, err := r.Members.List(ctx)
		if err != nil {
			return err
		}

		postActive := calc.TotalActiveLoans(activeLoans).Add(in.Amount)
		capital := calc.TotalCapital(settings, members)
		postUtil := calc.UtilizationPercent(postActive, capital)
		postBalance := calc.FundBalance(entries, settings).Sub(in.Amount)

		warns = rules.LoanWarnings(postUtil, settings.UtilizationWarnPct, postBalance, settings.MinBalanceWarn)
		if len(warns) > 0 && !in.AcceptWarnings {
			return ErrWarningsPending
		}

		issued := in.IssueDate
		if issued.IsZero() {
			issued = s.now()
		}
		l := &loanacct.Loan{
			LoanID:             id.NewID32(),
			MemberID:           m.MemberID,
			Principal:          in.Amount,
			Balance:            in.Amount,
			TermMonths:         in.TermMonths,
			MonthlyInstallment: in.Amount.DivRound(decimal.NewFromInt(int64(in.TermMonths)), 2),
			IssueDate:          issued,
			Status:             loanacct.StatusActive,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		e := &ledger.Entry{
			EntryID:    id.NewID32(),
			Kind:       ledger.KindLoanDisbursement,
			Amount:     in.Amount,
			MemberID:   m.MemberID,
			LoanID:     l.LoanID,
			OccurredAt: issued,
		}
		if err := r.Ledger.Create(ctx, e); err != nil {
			return err
		}
		if err := s.engine.RelevelLedger(ctx, r); err != nil {
			return err
		}

		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, warns, err
	}
	return dto, nil, nil
}

// CompleteLoan is the manual completion entry point. It first re-derives the
// balance from the recorded repayments; a loan that still owes anything is
// not completable by hand.
func (s *Service) CompleteLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := s.mutate(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return orNotFound(err, loanacct.ErrNotFound)
		}
		if l.Status == loanacct.StatusCompleted {
			return loanacct.ErrAlreadyCompleted
		}
		l, err = s.engine.RefreshLoan(ctx, r, loanID)
		if err != nil {
			return err
		}
		if l.Status != loanacct.StatusCompleted {
			return loanacct.ErrOutstandingDebt
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *Service) GetLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return orNotFound(err, loanacct.ErrNotFound)
		}
		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
