package fundops

import (
	"time"

	"github.com/shopspring/decimal"

	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/payment"
)

type MemberDTO struct {
	MemberID           string           `json:"member_id"`
	Name               string           `json:"name"`
	Role               string           `json:"role"`
	Status             string           `json:"status"`
	Email              string           `json:"email,omitempty"`
	Phone              string           `json:"phone,omitempty"`
	JoinDate           time.Time        `json:"join_date"`
	TotalContributions decimal.Decimal  `json:"total_contributions"`
	CashOutAmount      *decimal.Decimal `json:"cash_out_amount,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

func toMemberDTO(m *member.Member) *MemberDTO {
	return &MemberDTO{
		MemberID:           m.MemberID,
		Name:               m.Name,
		Role:               string(m.Role),
		Status:             string(m.Status),
		Email:              m.Email,
		Phone:              m.Phone,
		JoinDate:           m.JoinDate,
		TotalContributions: m.TotalContributions,
		CashOutAmount:      m.CashOutAmount,
		CreatedAt:          m.CreatedAt,
	}
}

type LoanDTO struct {
	LoanID             string          `json:"loan_id"`
	MemberID           string          `json:"member_id"`
	Principal          decimal.Decimal `json:"principal"`
	Balance            decimal.Decimal `json:"balance"`
	TermMonths         int             `json:"term_months"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	IssueDate          time.Time       `json:"issue_date"`
	Status             string          `json:"status"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
}

func toLoanDTO(l *loanacct.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:             l.LoanID,
		MemberID:           l.MemberID,
		Principal:          l.Principal,
		Balance:            l.Balance,
		TermMonths:         l.TermMonths,
		MonthlyInstallment: l.MonthlyInstallment,
		IssueDate:          l.IssueDate,
		Status:             string(l.Status),
		CompletedAt:        l.CompletedAt,
	}
}

type PaymentDTO struct {
	PaymentID           string          `json:"payment_id"`
	MemberID            string          `json:"member_id"`
	LoanID              string          `json:"loan_id,omitempty"`
	Kind                string          `json:"kind"`
	Amount              decimal.Decimal `json:"amount"`
	ContributionPortion decimal.Decimal `json:"contribution_portion"`
	LoanPortion         decimal.Decimal `json:"loan_portion"`
	PaidAt              time.Time       `json:"paid_at"`
	Method              string          `json:"method,omitempty"`
	Notes               string          `json:"notes,omitempty"`
}

func toPaymentDTO(p *payment.Payment) *PaymentDTO {
	return &PaymentDTO{
		PaymentID:           p.PaymentID,
		MemberID:            p.MemberID,
		LoanID:              p.LoanID,
		Kind:                string(p.Kind),
		Amount:              p.Amount,
		ContributionPortion: p.ContributionPortion,
		LoanPortion:         p.LoanPortion,
		PaidAt:              p.PaidAt,
		Method:              p.Method,
		Notes:               p.Notes,
	}
}

type CashOutDTO struct {
	MemberID string          `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
	Status   string          `json:"status"`
}

type InterestDTO struct {
	Amount          decimal.Decimal `json:"amount"`
	InterestAccrued decimal.Decimal `json:"interest_accrued"`
	AppliedAt       time.Time       `json:"applied_at"`
}

type SponsorDTO struct {
	Kind             string          `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	SponsorRemaining decimal.Decimal `json:"sponsor_remaining"`
}
