// Package memstore is an in-memory implementation of every repository and the
// unit of work, for exercising full mutation flows without a database.
// Transactions are taken at face value: fn either succeeds or its error is
// returned; no rollback is simulated.
package memstore

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"staff-welfare-fund/internal/domain/fund"
	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/payment"
	"staff-welfare-fund/internal/domain/uow"
)

type Store struct {
	nextID   uint64
	members  []*member.Member
	loans    []*loanacct.Loan
	payments []*payment.Payment
	entries  []*ledger.Entry
	settings *fund.Settings
}

func New(settings *fund.Settings) *Store {
	return &Store{nextID: 1, settings: settings}
}

func (s *Store) id() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

// Repos returns the repository bundle backed by this store.
func (s *Store) Repos() uow.Repos {
	return uow.Repos{
		Members:  (*memberRepo)(s),
		Loans:    (*loanRepo)(s),
		Payments: (*paymentRepo)(s),
		Ledger:   (*ledgerRepo)(s),
		Settings: (*settingsRepo)(s),
	}
}

func (s *Store) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	return fn(s.Repos())
}

// ---- members ----

type memberRepo Store

func (r *memberRepo) Create(_ context.Context, m *member.Member) error {
	m.ID = (*Store)(r).id()
	r.members = append(r.members, m)
	return nil
}

func (r *memberRepo) GetByMemberID(_ context.Context, memberID string) (*member.Member, error) {
	for _, m := range r.members {
		if m.MemberID == memberID {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memberRepo) Save(_ context.Context, m *member.Member) error { return nil }

func (r *memberRepo) Delete(_ context.Context, m *member.Member) error {
	for i, cur := range r.members {
		if cur.MemberID == m.MemberID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memberRepo) List(_ context.Context) ([]*member.Member, error) {
	return append([]*member.Member(nil), r.members...), nil
}

// ---- loans ----

type loanRepo Store

func (r *loanRepo) Create(_ context.Context, l *loanacct.Loan) error {
	l.ID = (*Store)(r).id()
	r.loans = append(r.loans, l)
	return nil
}

func (r *loanRepo) GetByLoanID(_ context.Context, loanID string) (*loanacct.Loan, error) {
	for _, l := range r.loans {
		if l.LoanID == loanID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *loanRepo) Save(_ context.Context, l *loanacct.Loan) error { return nil }

func (r *loanRepo) ListActive(_ context.Context) ([]*loanacct.Loan, error) {
	var out []*loanacct.Loan
	for _, l := range r.loans {
		if l.Status == loanacct.StatusActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *loanRepo) ListActiveByMemberID(_ context.Context, memberID string) ([]*loanacct.Loan, error) {
	var out []*loanacct.Loan
	for _, l := range r.loans {
		if l.MemberID == memberID && l.Status == loanacct.StatusActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *loanRepo) ListByMemberID(_ context.Context, memberID string) ([]*loanacct.Loan, error) {
	var out []*loanacct.Loan
	for _, l := range r.loans {
		if l.MemberID == memberID {
			out = append(out, l)
		}
	}
	return out, nil
}

// ---- payments ----

type paymentRepo Store

func (r *paymentRepo) Create(_ context.Context, p *payment.Payment) error {
	p.ID = (*Store)(r).id()
	r.payments = append(r.payments, p)
	return nil
}

func (r *paymentRepo) GetByPaymentID(_ context.Context, paymentID string) (*payment.Payment, error) {
	for _, p := range r.payments {
		if p.PaymentID == paymentID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *paymentRepo) Save(_ context.Context, p *payment.Payment) error { return nil }

func (r *paymentRepo) Delete(_ context.Context, p *payment.Payment) error {
	for i, cur := range r.payments {
		if cur.PaymentID == p.PaymentID {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *paymentRepo) ListByMemberID(_ context.Context, memberID string) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.payments {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *paymentRepo) ListByLoanID(_ context.Context, loanID string) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- ledger ----

type ledgerRepo Store

func (r *ledgerRepo) Create(_ context.Context, e *ledger.Entry) error {
	e.ID = (*Store)(r).id()
	r.entries = append(r.entries, e)
	return nil
}

func (r *ledgerRepo) GetByPaymentID(_ context.Context, paymentID string) (*ledger.Entry, error) {
	for _, e := range r.entries {
		if e.PaymentID == paymentID && paymentID != "" {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *ledgerRepo) Save(_ context.Context, e *ledger.Entry) error { return nil }

func (r *ledgerRepo) Delete(_ context.Context, e *ledger.Entry) error {
	for i, cur := range r.entries {
		if cur.EntryID == e.EntryID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *ledgerRepo) ListOrdered(_ context.Context) ([]*ledger.Entry, error) {
	out := append([]*ledger.Entry(nil), r.entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.Before(out[j].OccurredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ---- settings ----

type settingsRepo Store

func (r *settingsRepo) Get(_ context.Context) (*fund.Settings, error) {
	if r.settings == nil {
		return nil, fund.ErrSettingsMissing
	}
	return r.settings, nil
}

func (r *settingsRepo) Save(_ context.Context, s *fund.Settings) error {
	r.settings = s
	return nil
}
