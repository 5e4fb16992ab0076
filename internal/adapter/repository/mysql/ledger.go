package mysql

import (
	"context"

	"gorm.io/gorm"

	ledgerDomain "loanserve-backend/internal/domain/ledger"
)

// LedgerRepository only appends; there is no update or delete path.
type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) Append(ctx context.Context, t *ledgerDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *LedgerRepository) ListByLoanID(ctx context.Context, loanID string) ([]ledgerDomain.Transaction, error) {
	var out []ledgerDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
