package application

import (
	"time"

	appDomain "loanserve-backend/internal/domain/application"
)

type ApplyInput struct {
	UserID        string                     `json:"user_id"`
	Principal     float64                    `json:"principal"`
	Purpose       string                     `json:"purpose"`
	TermMonths    int                        `json:"term_months"`
	MonthlyIncome float64                    `json:"monthly_income"`
	Employment    appDomain.EmploymentStatus `json:"employment"`
}

func (ApplyInput) RequestName() string { return "application.apply" }

type ApproveInput struct {
	ApplicationID string `json:"application_id"`
	ReviewerID    string `json:"reviewer_id"`
}

func (ApproveInput) RequestName() string { return "application.approve" }

type RejectInput struct {
	ApplicationID string `json:"application_id"`
	ReviewerID    string `json:"reviewer_id"`
	Reason        string `json:"reason"`
}

func (RejectInput) RequestName() string { return "application.reject" }

type ApplicationDTO struct {
	ApplicationID   string     `json:"application_id"`
	UserID          string     `json:"user_id"`
	Principal       float64    `json:"principal"`
	Purpose         string     `json:"purpose"`
	TermMonths      int        `json:"term_months"`
	MonthlyIncome   float64    `json:"monthly_income"`
	Employment      string     `json:"employment"`
	Status          string     `json:"status"`
	AppliedAt       time.Time  `json:"applied_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewerID      string     `json:"reviewer_id,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// ApprovalDTO reports the decided application together with the loan the
// approval created.
type ApprovalDTO struct {
	Application ApplicationDTO `json:"application"`
	LoanID      string         `json:"loan_id"`
	TotalAmount float64        `json:"total_amount"`
	Monthly     float64        `json:"monthly_payment"`
}

func toDTO(a *appDomain.LoanApplication) ApplicationDTO {
	return ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		UserID:          a.UserID,
		Principal:       a.Principal,
		Purpose:         a.Purpose,
		TermMonths:      a.TermMonths,
		MonthlyIncome:   a.MonthlyIncome,
		Employment:      string(a.Employment),
		Status:          string(a.Status),
		AppliedAt:       a.AppliedAt,
		ReviewedAt:      a.ReviewedAt,
		ReviewerID:      a.ReviewerID,
		RejectionReason: a.RejectionReason,
	}
}
