package query

import (
	loanUC "loanserve-backend/internal/usecase/loan"
)

type GetLoanInput struct {
	LoanID string `json:"loan_id"`
}

func (GetLoanInput) RequestName() string { return "query.loan.get" }

type ListLoansInput struct {
	Status  string `json:"status"`
	UserID  string `json:"user_id"`
	Overdue bool   `json:"overdue"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
}

func (ListLoansInput) RequestName() string { return "query.loan.list" }

type PortfolioReportInput struct{}

func (PortfolioReportInput) RequestName() string { return "query.report.portfolio" }

type UserReportInput struct {
	UserID string `json:"user_id"`
}

func (UserReportInput) RequestName() string { return "query.report.user" }

type LoanPage struct {
	Loans []loanUC.LoanDTO `json:"loans"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type PortfolioReport struct {
	TotalPrincipal   float64          `json:"total_principal"`
	TotalOutstanding float64          `json:"total_outstanding"`
	CountsByStatus   map[string]int64 `json:"counts_by_status"`
}

type UserReport struct {
	UserID           string           `json:"user_id"`
	TotalBorrowed    float64          `json:"total_borrowed"`
	TotalRepaid      float64          `json:"total_repaid"`
	TotalOutstanding float64          `json:"total_outstanding"`
	CountsByStatus   map[string]int64 `json:"counts_by_status"`
}
