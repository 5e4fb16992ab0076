package payment

import (
	"time"
)

type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodDebitCard    Method = "debit_card"
	MethodCash         Method = "cash"
	MethodEwallet      Method = "ewallet"
)

func (m Method) Valid() bool {
	switch m {
	case MethodBankTransfer, MethodDebitCard, MethodCash, MethodEwallet:
		return true
	}
	return false
}

type Status string

const (
	StatusSettled Status = "settled"
)

type Payment struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string    `gorm:"size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID    string    `gorm:"size:32;index:idx_payments_loan;uniqueIndex:ux_payments_loan_reference" json:"loan_id"`
	PayerID   string    `gorm:"size:32;index:idx_payments_payer" json:"payer_id"`
	Amount    float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Method    Method    `gorm:"size:32" json:"method"`
	Status    Status    `gorm:"size:16;default:'settled'" json:"status"`
	Reference string    `gorm:"size:64;uniqueIndex:ux_payments_loan_reference" json:"reference"`
	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
