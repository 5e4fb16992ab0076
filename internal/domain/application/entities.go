package application

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type EmploymentStatus string

const (
	Employed     EmploymentStatus = "employed"
	SelfEmployed EmploymentStatus = "self_employed"
	Unemployed   EmploymentStatus = "unemployed"
	Retired      EmploymentStatus = "retired"
	Student      EmploymentStatus = "student"
)

func (e EmploymentStatus) Valid() bool {
	switch e {
	case Employed, SelfEmployed, Unemployed, Retired, Student:
		return true
	}
	return false
}

// AllowedTermMonths are the only term lengths an application may request.
var AllowedTermMonths = []int{6, 12, 24, 36, 48, 60}

func ValidTerm(months int) bool {
	for _, m := range AllowedTermMonths {
		if m == months {
			return true
		}
	}
	return false
}

type LoanApplication struct {
	ID              uint64           `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string           `gorm:"size:32;uniqueIndex:ux_applications_application_id" json:"application_id"`
	UserID          string           `gorm:"size:32;index:idx_applications_user" json:"user_id"`
	Principal       float64          `gorm:"type:decimal(18,2)" json:"principal"`
	Purpose         string           `gorm:"type:text" json:"purpose"`
	TermMonths      int              `gorm:"not null" json:"term_months"`
	MonthlyIncome   float64          `gorm:"type:decimal(18,2)" json:"monthly_income"`
	Employment      EmploymentStatus `gorm:"size:32" json:"employment"`
	Status          Status           `gorm:"size:16;default:'pending';index:idx_applications_status" json:"status"`
	AppliedAt       time.Time        `gorm:"autoCreateTime" json:"applied_at"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	ReviewerID      string           `gorm:"size:32" json:"reviewer_id,omitempty"`
	RejectionReason string           `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanApplication) TableName() string { return "loan_applications" }
