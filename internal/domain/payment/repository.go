package payment

import "context"

type Repository interface {
	// Create fails with the storage layer's duplicate-key error when the
	// (loan_id, reference) pair already exists.
	Create(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	ListByLoanID(ctx context.Context, loanID string) ([]Payment, error)
	SumByPayerID(ctx context.Context, payerID string) (float64, error)
}
