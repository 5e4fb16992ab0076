// Package memstore is an in-memory uow.UnitOfWork for workflow tests. It
// serializes transactions with one mutex and restores a snapshot on error,
// mirroring the commit/rollback semantics of the gorm unit of work.
package memstore

import (
	"context"
	"sync"

	"gorm.io/gorm"

	appDomain "loanserve-backend/internal/domain/application"
	ledgerDomain "loanserve-backend/internal/domain/ledger"
	loanDomain "loanserve-backend/internal/domain/loan"
	notifDomain "loanserve-backend/internal/domain/notification"
	paymentDomain "loanserve-backend/internal/domain/payment"
	"loanserve-backend/internal/domain/uow"
	userDomain "loanserve-backend/internal/domain/user"
)

type state struct {
	users     map[string]userDomain.User
	apps      map[string]appDomain.LoanApplication
	loans     map[string]loanDomain.Loan
	schedules []loanDomain.RepaymentSchedule
	payments  []paymentDomain.Payment
	txns      []ledgerDomain.Transaction
	notifs    []notifDomain.Notification
}

func newState() *state {
	return &state{
		users: make(map[string]userDomain.User),
		apps:  make(map[string]appDomain.LoanApplication),
		loans: make(map[string]loanDomain.Loan),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.apps {
		c.apps[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	c.schedules = append([]loanDomain.RepaymentSchedule(nil), s.schedules...)
	c.payments = append([]paymentDomain.Payment(nil), s.payments...)
	c.txns = append([]ledgerDomain.Transaction(nil), s.txns...)
	c.notifs = append([]notifDomain.Notification(nil), s.notifs...)
	return c
}

type Store struct {
	mu sync.Mutex
	st *state
}

func New() *Store { return &Store{st: newState()} }

// Seed helpers run outside any transaction.

func (s *Store) SeedUser(u userDomain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.UserID] = u
}

func (s *Store) SeedApplication(a appDomain.LoanApplication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.apps[a.ApplicationID] = a
}

func (s *Store) SeedLoan(l loanDomain.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.loans[l.LoanID] = l
}

func (s *Store) SeedSchedule(rows ...loanDomain.RepaymentSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.schedules = append(s.st.schedules, rows...)
}

// Read helpers for assertions.

func (s *Store) Loan(loanID string) (loanDomain.Loan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.st.loans[loanID]
	return l, ok
}

func (s *Store) Application(applicationID string) (appDomain.LoanApplication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.st.apps[applicationID]
	return a, ok
}

func (s *Store) Payments() []paymentDomain.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]paymentDomain.Payment(nil), s.st.payments...)
}

func (s *Store) Transactions() []ledgerDomain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledgerDomain.Transaction(nil), s.st.txns...)
}

func (s *Store) Notifications() []notifDomain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notifDomain.Notification(nil), s.st.notifs...)
}

func (s *Store) Schedules(loanID string) []loanDomain.RepaymentSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []loanDomain.RepaymentSchedule
	for _, row := range s.st.schedules {
		if row.LoanID == loanID {
			out = append(out, row)
		}
	}
	return out
}

func (s *Store) repos() uow.Repos {
	return uow.Repos{
		Users:         &userRepo{st: s.st},
		Applications:  &appRepo{st: s.st},
		Loans:         &loanRepo{st: s.st},
		Schedules:     &scheduleRepo{st: s.st},
		Payments:      &paymentRepo{st: s.st},
		Ledger:        &ledgerRepo{st: s.st},
		Notifications: &notifRepo{st: s.st},
	}
}

// WithinTx serializes on the store mutex and rolls the snapshot back on
// error, like the real unit of work.
func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.st.clone()
	if err := fn(s.repos()); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	stored, ok := s.st.loans[loanID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	snapshot := s.st.clone()
	l := stored
	if err := fn(s.repos(), &l); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}
