package loan

import (
	"context"
	"time"
)

// ListFilter narrows List; zero values mean "no constraint".
type ListFilter struct {
	Status  Status
	UserID  string
	Overdue bool // loans with an unpaid installment due before Now
	Now     time.Time
	Offset  int
	Limit   int
}

// StatusCount is one row of a count-by-status aggregate.
type StatusCount struct {
	Status Status
	Count  int64
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the rest of the transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	CountByStatus(ctx context.Context, userID string) ([]StatusCount, error)
	SumPrincipal(ctx context.Context, userID string) (float64, error)
	SumOutstanding(ctx context.Context, userID string) (float64, error)
}

type ScheduleRepository interface {
	CreateBatch(ctx context.Context, rows []RepaymentSchedule) error
	ListByLoanID(ctx context.Context, loanID string) ([]RepaymentSchedule, error)
	Save(ctx context.Context, row *RepaymentSchedule) error
}
