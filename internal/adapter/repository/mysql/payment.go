package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "loanserve-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

// Create relies on ux_payments_loan_reference; a replayed (loan, reference)
// pair comes back as gorm.ErrDuplicatedKey.
func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) SumByPayerID(ctx context.Context, payerID string) (float64, error) {
	var sum float64
	res := r.db.WithContext(ctx).Model(&paymentDomain.Payment{}).
		Where("payer_id = ?", payerID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum)
	return sum, res.Error
}
