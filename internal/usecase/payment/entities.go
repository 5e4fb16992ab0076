package payment

import (
	"time"

	paymentDomain "loanserve-backend/internal/domain/payment"
)

type RecordInput struct {
	LoanID    string               `json:"loan_id"`
	PayerID   string               `json:"payer_id"`
	Amount    float64              `json:"amount"`
	Method    paymentDomain.Method `json:"method"`
	Reference string               `json:"reference"`
}

func (RecordInput) RequestName() string { return "payment.record" }

// ReceiptDTO describes one recorded payment and the loan balance it left
// behind.
type ReceiptDTO struct {
	PaymentID        string    `json:"payment_id"`
	TransactionID    string    `json:"transaction_id"`
	LoanID           string    `json:"loan_id"`
	PayerID          string    `json:"payer_id"`
	Amount           float64   `json:"amount"`
	Method           string    `json:"method"`
	Reference        string    `json:"reference"`
	RemainingBalance float64   `json:"remaining_balance"`
	LoanCompleted    bool      `json:"loan_completed"`
	PaidAt           time.Time `json:"paid_at"`
}
