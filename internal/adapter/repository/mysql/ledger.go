package mysql

import (
	"context"

	ledgerDomain "staff-welfare-fund/internal/domain/ledger"

	"gorm.io/gorm"
)

type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) Create(ctx context.Context, e *ledgerDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *LedgerRepository) Save(ctx context.Context, e *ledgerDomain.Entry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *LedgerRepository) Delete(ctx context.Context, e *ledgerDomain.Entry) error {
	return r.db.WithContext(ctx).Delete(e).Error
}

func (r *LedgerRepository) GetByPaymentID(ctx context.Context, paymentID string) (*ledgerDomain.Entry, error) {
	var out ledgerDomain.Entry
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	return &out, res.Error
}

// ListOrdered returns the full ledger in reconciliation order: occurrence
// date ascending, insertion order breaking ties.
func (r *LedgerRepository) ListOrdered(ctx context.Context) ([]*ledgerDomain.Entry, error) {
	var out []*ledgerDomain.Entry
	res := r.db.WithContext(ctx).Order("occurred_at ASC, id ASC").Find(&out)
	return out, res.Error
}
