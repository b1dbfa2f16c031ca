package uow

import (
	"context"

	"staff-welfare-fund/internal/domain/fund"
	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/payment"
)

type Repos struct {
	Members  member.Repository
	Loans    loanacct.Repository
	Payments payment.Repository
	Ledger   ledger.Repository
	Settings fund.SettingsRepository
}

// UnitOfWork runs one mutate-and-reconcile sequence as a single transaction
// so readers never observe a half-reconciled state.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
