package fundops

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/uow"
	"staff-welfare-fund/internal/usecase/rules"
	"staff-welfare-fund/pkg/id"
)

type CreateMemberInput struct {
	Name     string
	Role     member.Role
	Email    string
	Phone    string
	JoinDate time.Time

	// Optional recorded exceptions to the standard loan limit / terms.
	LimitOverride      *decimal.Decimal
	TermOverrideMonths *int
	OverrideReason     string

	AcceptWarnings bool
}

func (s *Service) CreateMember(ctx context.Context, in CreateMemberInput) (*MemberDTO, []rules.Warning, error) {
	if !in.Role.Valid() {
		return nil, nil, &rules.ValidationError{Field: "role", Message: "is not a recognised role"}
	}
	verr, warns := rules.ValidateNewMember(in.Name, in.Email, in.Phone)
	if verr != nil {
		return nil, nil, verr
	}
	if in.LimitOverride != nil && in.LimitOverride.Sign() <= 0 {
		return nil, nil, &rules.ValidationError{Field: "limit_override", Message: "must be greater than zero"}
	}
	// A zero term would make the installment division blow up downstream.
	if in.TermOverrideMonths != nil && *in.TermOverrideMonths <= 0 {
		return nil, nil, &rules.ValidationError{Field: "term_override_months", Message: "must be greater than zero"}
	}
	if len(warns) > 0 && !in.AcceptWarnings {
		return nil, warns, ErrWarningsPending
	}

	now := s.now()
	joined := in.JoinDate
	if joined.IsZero() {
		joined = now
	}
	m := &member.Member{
		MemberID:           id.NewID32(),
		Name:               in.Name,
		Role:               in.Role,
		Email:              in.Email,
		Phone:              in.Phone,
		JoinDate:           joined,
		Status:             member.StatusActive,
		TotalContributions: decimal.Zero,
		LimitOverride:      in.LimitOverride,
		TermOverrideMonths: in.TermOverrideMonths,
		OverrideReason:     in.OverrideReason,
	}
	if in.LimitOverride != nil && in.OverrideReason != "" {
		m.OverrideApprovedAt = &now
	}

	err := s.mutate(ctx, func(r uow.Repos) error {
		return r.Members.Create(ctx, m)
	})
	if err != nil {
		return nil, nil, err
	}
	return toMemberDTO(m), warns, nil
}

func (s *Service) DeleteMember(ctx context.Context, memberID string) error {
	return s.mutate(ctx, func(r uow.Repos) error {
		m, err := r.Members.GetByMemberID(ctx, memberID)
		if err != nil {
			return orNotFound(err, member.ErrNotFound)
		}
		active, err := r.Loans.ListActiveByMemberID(ctx, memberID)
		if err != nil {
			return err
		}
		if verr := rules.ValidateMemberDeletion(len(active)); verr != nil {
			return verr
		}
		return r.Members.Delete(ctx, m)
	})
}

func (s *Service) SuspendMember(ctx context.Context, memberID string) (*MemberDTO, error) {
	return s.setStatus(ctx, memberID, member.StatusSuspended)
}

func (s *Service) ReactivateMember(ctx context.Context, memberID string) (*MemberDTO, error) {
	return s.setStatus(ctx, memberID, member.StatusActive)
}

func (s *Service) setStatus(ctx context.Context, memberID string, status member.Status) (*MemberDTO, error) {
	var dto *MemberDTO
	err := s.mutate(ctx, func(r uow.Repos) error {
		m, err := r.Members.GetByMemberID(ctx, memberID)
		if err != nil {
			return orNotFound(err, member.ErrNotFound)
		}
		// Cash-out is terminal: no way back into the fund.
		if m.CashedOut() {
			return member.ErrCashedOut
		}
		m.Status = status
		if err := r.Members.Save(ctx, m); err != nil {
			return err
		}
		dto = toMemberDTO(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
