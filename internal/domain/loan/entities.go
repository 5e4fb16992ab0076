package loan

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

type Loan struct {
	ID               uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string     `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID           string     `gorm:"size:32;index:idx_loans_user" json:"user_id"`
	ApplicationID    string     `gorm:"size:32;index:idx_loans_application" json:"application_id"`
	Principal        float64    `gorm:"type:decimal(18,2)" json:"principal"`
	AnnualRate       float64    `gorm:"type:decimal(6,2)" json:"annual_rate"`
	TermMonths       int        `gorm:"not null" json:"term_months"`
	Status           Status     `gorm:"size:16;default:'pending';index:idx_loans_status" json:"status"`
	MonthlyPayment   float64    `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	TotalAmount      float64    `gorm:"type:decimal(18,2)" json:"total_amount"`
	RemainingBalance float64    `gorm:"type:decimal(18,2)" json:"remaining_balance"`
	AppliedAt        time.Time  `json:"applied_at"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	DisbursedAt      *time.Time `json:"disbursed_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Terms holds the fixed amortization figures for a principal borrowed at a
// nominal annual rate over equal monthly installments.
type Terms struct {
	MonthlyRate    float64
	TotalInterest  float64
	TotalAmount    float64
	MonthlyPayment float64
}

func ComputeTerms(principal, annualRate float64, termMonths int) Terms {
	monthlyRate := annualRate / 100 / 12
	totalInterest := principal * monthlyRate * float64(termMonths)
	totalAmount := principal + totalInterest
	return Terms{
		MonthlyRate:    monthlyRate,
		TotalInterest:  totalInterest,
		TotalAmount:    totalAmount,
		MonthlyPayment: totalAmount / float64(termMonths),
	}
}

// RepaymentSchedule is one installment row, generated at disbursement.
// Rows only ever flip Paid; they are never reordered or deleted.
type RepaymentSchedule struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID        string    `gorm:"size:32;index:idx_schedules_loan;uniqueIndex:ux_schedules_loan_installment" json:"loan_id"`
	InstallmentNo int       `gorm:"not null;uniqueIndex:ux_schedules_loan_installment" json:"installment_no"`
	DueDate       time.Time `gorm:"not null;index:idx_schedules_due" json:"due_date"`
	Principal     float64   `gorm:"type:decimal(18,2)" json:"principal"`
	Interest      float64   `gorm:"type:decimal(18,2)" json:"interest"`
	Total         float64   `gorm:"type:decimal(18,2)" json:"total"`
	Paid          bool      `gorm:"default:false;index:idx_schedules_paid" json:"paid"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RepaymentSchedule) TableName() string { return "repayment_schedules" }
