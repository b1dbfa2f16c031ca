package loanacct

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	ListActive(ctx context.Context) ([]*Loan, error)
	ListActiveByMemberID(ctx context.Context, memberID string) ([]*Loan, error)
	ListByMemberID(ctx context.Context, memberID string) ([]*Loan, error)
}
