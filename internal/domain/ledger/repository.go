package ledger

import "context"

type Repository interface {
	Append(ctx context.Context, t *Transaction) error
	ListByLoanID(ctx context.Context, loanID string) ([]Transaction, error)
}
