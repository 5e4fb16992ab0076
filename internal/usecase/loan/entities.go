package loan

import (
	"time"

	loanDomain "loanserve-backend/internal/domain/loan"
	paymentDomain "loanserve-backend/internal/domain/payment"
)

type DisburseInput struct {
	LoanID    string               `json:"loan_id"`
	Method    paymentDomain.Method `json:"method"`
	Reference string               `json:"reference"`
}

func (DisburseInput) RequestName() string { return "loan.disburse" }

type RejectInput struct {
	LoanID     string `json:"loan_id"`
	ReviewerID string `json:"reviewer_id"`
}

func (RejectInput) RequestName() string { return "loan.reject" }

type CloseInput struct {
	LoanID string `json:"loan_id"`
}

func (CloseInput) RequestName() string { return "loan.close" }

type LoanDTO struct {
	LoanID           string     `json:"loan_id"`
	UserID           string     `json:"user_id"`
	ApplicationID    string     `json:"application_id"`
	Principal        float64    `json:"principal"`
	AnnualRate       float64    `json:"annual_rate"`
	TermMonths       int        `json:"term_months"`
	Status           string     `json:"status"`
	MonthlyPayment   float64    `json:"monthly_payment"`
	TotalAmount      float64    `json:"total_amount"`
	RemainingBalance float64    `json:"remaining_balance"`
	AppliedAt        time.Time  `json:"applied_at"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	DisbursedAt      *time.Time `json:"disbursed_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// DisbursementReceipt is returned to the caller after funds release.
type DisbursementReceipt struct {
	TransactionID string    `json:"transaction_id"`
	LoanID        string    `json:"loan_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Reference     string    `json:"reference"`
	DisbursedAt   time.Time `json:"disbursed_at"`
}

func ToDTO(l *loanDomain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:           l.LoanID,
		UserID:           l.UserID,
		ApplicationID:    l.ApplicationID,
		Principal:        l.Principal,
		AnnualRate:       l.AnnualRate,
		TermMonths:       l.TermMonths,
		Status:           string(l.Status),
		MonthlyPayment:   l.MonthlyPayment,
		TotalAmount:      l.TotalAmount,
		RemainingBalance: l.RemainingBalance,
		AppliedAt:        l.AppliedAt,
		ApprovedAt:       l.ApprovedAt,
		DisbursedAt:      l.DisbursedAt,
		CompletedAt:      l.CompletedAt,
	}
}
