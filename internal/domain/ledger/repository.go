package ledger

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Entry, error)
	Save(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, e *Entry) error
	// ListOrdered returns every entry ordered by occurred_at ascending with
	// numeric id as the stable tiebreaker (insertion order for same-date rows).
	ListOrdered(ctx context.Context) ([]*Entry, error)
}
