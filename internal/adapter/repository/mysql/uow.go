package mysql

import (
	"context"

	"staff-welfare-fund/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Members:  &MemberRepository{db: tx},
			Loans:    &LoanRepository{db: tx},
			Payments: &PaymentRepository{db: tx},
			Ledger:   &LedgerRepository{db: tx},
			Settings: &SettingsRepository{db: tx},
		}
		return fn(r)
	})
}
