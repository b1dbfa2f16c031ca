// Package fundops is the only mutation surface of the fund: every create,
// edit, delete, interest application and cash-out enters here, runs its
// validate → write → reconcile sequence inside one transaction, and leaves
// every derived figure settled before anyone can read it.
package fundops

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"staff-welfare-fund/internal/domain/uow"
	"staff-welfare-fund/internal/usecase/calc"
	"staff-welfare-fund/internal/usecase/reconcile"
)

// ErrWarningsPending signals soft warnings that need an explicit
// accept_warnings re-submission before the mutation may proceed.
var ErrWarningsPending = errors.New("operation requires warning confirmation")

// SummaryCache is the optional read-side cache for fund summaries; the
// service invalidates it after every committed mutation.
type SummaryCache interface {
	Get(ctx context.Context) (*calc.FundSummary, bool)
	Set(ctx context.Context, s *calc.FundSummary)
	Invalidate(ctx context.Context)
}

type Service struct {
	uow    uow.UnitOfWork
	engine *reconcile.Engine
	cache  SummaryCache
	now    func() time.Time

	// Single logical writer: mutations serialize here so no two
	// read-compute-write sequences interleave.
	mu sync.Mutex
}

type Option func(*Service)

func WithCache(c SummaryCache) Option { return func(s *Service) { s.cache = c } }

func WithNow(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(u uow.UnitOfWork, opts ...Option) *Service {
	s := &Service{
		uow: u,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = reconcile.NewEngine().WithNow(s.now)
	return s
}

// mutate runs fn under the writer lock in one transaction and drops the
// summary cache once the transaction commits.
func (s *Service) mutate(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.uow.WithinTx(ctx, fn); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}

// orNotFound swaps gorm's record-not-found for the domain sentinel.
func orNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
