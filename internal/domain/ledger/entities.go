package ledger

import (
	"time"
)

type Type string

const (
	TypeDisbursement Type = "disbursement"
	TypePayment      Type = "payment"
)

// Transaction is an append-only ledger row. Rows are never updated or
// deleted; corrections are new rows.
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	TransactionID string    `gorm:"size:32;uniqueIndex:ux_transactions_transaction_id" json:"transaction_id"`
	LoanID        string    `gorm:"size:32;index:idx_transactions_loan" json:"loan_id"`
	Type          Type      `gorm:"size:32" json:"type"`
	Amount        float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Description   string    `gorm:"type:text" json:"description"`
	Reference     string    `gorm:"size:64" json:"reference,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
