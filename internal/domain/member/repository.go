package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByMemberID(ctx context.Context, memberID string) (*Member, error)
	Save(ctx context.Context, m *Member) error
	// Delete soft-deletes; callers must have cleared the active-loan guard first.
	Delete(ctx context.Context, m *Member) error
	List(ctx context.Context) ([]*Member, error)
}
