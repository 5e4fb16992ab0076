package uow

import (
	"context"

	"loanserve-backend/internal/domain/application"
	"loanserve-backend/internal/domain/ledger"
	"loanserve-backend/internal/domain/loan"
	"loanserve-backend/internal/domain/notification"
	"loanserve-backend/internal/domain/payment"
	"loanserve-backend/internal/domain/user"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Users         user.Repository
	Applications  application.Repository
	Loans         loan.Repository
	Schedules     loan.ScheduleRepository
	Payments      payment.Repository
	Ledger        ledger.Repository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one transaction; any error rolls everything back.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, serializing concurrent
	// operations against the same loan, then passes it in.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
