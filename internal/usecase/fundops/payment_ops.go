package fundops

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/payment"
	"staff-welfare-fund/internal/domain/uow"
	"staff-welfare-fund/internal/usecase/rules"
	"staff-welfare-fund/pkg/id"
)

type CreatePaymentInput struct {
	MemberID string
	// Non-empty iff the payment repays a loan.
	LoanID string
	Amount decimal.Decimal
	PaidAt time.Time
	Method string
	Notes  string
}

func (s *Service) CreatePayment(ctx context.Context, in CreatePaymentInput) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := s.mutate(ctx, func(r uow.Repos) error {
		m, err := r.Members.GetByMemberID(ctx, in.MemberID)
		if err != nil {
			return orNotFound(err, member.ErrNotFound)
		}

		p := &payment.Payment{
			PaymentID: id.NewID32(),
			MemberID:  m.MemberID,
			Amount:    in.Amount,
			PaidAt:    in.PaidAt,
			Method:    in.Method,
			Notes:     in.Notes,
		}
		if p.PaidAt.IsZero() {
			p.PaidAt = s.now()
		}

		entryKind := ledger.KindContribution
		if in.LoanID != "" {
			l, err := r.Loans.GetByLoanID(ctx, in.LoanID)
			if err != nil {
				return orNotFound(err, loanacct.ErrNotFound)
			}
			if l.MemberID != m.MemberID {
				return &rules.ValidationError{Field: "loan_id", Message: "does not belong to this member"}
			}
			if l.Status != loanacct.StatusActive {
				return loanacct.ErrNotActive
			}
			if verr := rules.ValidateRepayment(in.Amount, l.Balance); verr != nil {
				return verr
			}
			p.LoanID = l.LoanID
			p.Kind = payment.KindLoanRepayment
			p.LoanPortion = in.Amount
			p.ContributionPortion = decimal.Zero
			entryKind = ledger.KindLoanRepayment
		} else {
			if verr := rules.ValidateContribution(m, in.Amount); verr != nil {
				return verr
			}
			p.Kind = payment.KindContribution
			p.ContributionPortion = in.Amount
			p.LoanPortion = decimal.Zero
		}

		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		e := &ledger.Entry{
			EntryID:    id.NewID32(),
			Kind:       entryKind,
			Amount:     p.Amount,
			MemberID:   p.MemberID,
			LoanID:     p.LoanID,
			PaymentID:  p.PaymentID,
			OccurredAt: p.PaidAt,
		}
		if err := r.Ledger.Create(ctx, e); err != nil {
			return err
		}

		if err := s.reconcilePayment(ctx, r, p); err != nil {
			return err
		}
		dto = toPaymentDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

type EditPaymentInput struct {
	PaymentID string
	Amount    decimal.Decimal
	// Zero keeps the recorded date.
	PaidAt time.Time
	Method string
	Notes  string
}

// EditPayment rewrites a payment wherever it sits in history; the member
// total, loan balance and every downstream ledger snapshot are re-derived.
func (s *Service) EditPayment(ctx context.Context, in EditPaymentInput) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := s.mutate(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentID(ctx, in.PaymentID)
		if err != nil {
			return orNotFound(err, payment.ErrNotFound)
		}

		if p.Kind == payment.KindLoanRepayment {
			l, err := r.Loans.GetByLoanID(ctx, p.LoanID)
			if err != nil {
				return orNotFound(err, loanacct.ErrNotFound)
			}
			// Headroom counts the old portion back in: the edited amount may
			// take up to the balance the loan would have without this payment.
			if verr := rules.ValidateRepayment(in.Amount, l.Balance.Add(p.LoanPortion)); verr != nil {
				return verr
			}
			p.LoanPortion = in.Amount
		} else {
			if in.Amount.Sign() <= 0 {
				return &rules.ValidationError{Field: "amount", Message: "must be greater than zero"}
			}
			p.ContributionPortion = in.Amount
		}
		p.Amount = in.Amount
		if !in.PaidAt.IsZero() {
			p.PaidAt = in.PaidAt
		}
		if in.Method != "" {
			p.Method = in.Method
		}
		if in.Notes != "" {
			p.Notes = in.Notes
		}
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}

		e, err := r.Ledger.GetByPaymentID(ctx, p.PaymentID)
		if err != nil {
			return orNotFound(err, ledger.ErrNotFound)
		}
		e.Amount = p.Amount
		e.OccurredAt = p.PaidAt
		if err := r.Ledger.Save(ctx, e); err != nil {
			return err
		}

		if err := s.reconcilePayment(ctx, r, p); err != nil {
			return err
		}
		dto = toPaymentDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *Service) DeletePayment(ctx context.Context, paymentID string) error {
	return s.mutate(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentID(ctx, paymentID)
		if err != nil {
			return orNotFound(err, payment.ErrNotFound)
		}
		if err := r.Payments.Delete(ctx, p); err != nil {
			return err
		}
		e, err := r.Ledger.GetByPaymentID(ctx, paymentID)
		if err != nil {
			return orNotFound(err, ledger.ErrNotFound)
		}
		if err := r.Ledger.Delete(ctx, e); err != nil {
			return err
		}
		return s.reconcilePayment(ctx, r, p)
	})
}

// reconcilePayment runs the dependent-aggregate recomputes for a payment
// write, then re-levels the full ledger.
func (s *Service) reconcilePayment(ctx context.Context, r uow.Repos, p *payment.Payment) error {
	if p.LoanID != "" {
		if _, err := s.engine.RefreshLoan(ctx, r, p.LoanID); err != nil {
			return err
		}
	}
	if _, err := s.engine.RefreshMember(ctx, r, p.MemberID); err != nil {
		return err
	}
	return s.engine.RelevelLedger(ctx, r)
}
