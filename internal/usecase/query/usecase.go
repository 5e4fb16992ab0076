package query

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	loanDomain "loanserve-backend/internal/domain/loan"
	paymentDomain "loanserve-backend/internal/domain/payment"
	userDomain "loanserve-backend/internal/domain/user"
	loanUC "loanserve-backend/internal/usecase/loan"
	"loanserve-backend/pkg/apperr"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Usecase is the read side: no mutation, no unit of work.
type Usecase struct {
	loans    loanDomain.Repository
	payments paymentDomain.Repository
	users    userDomain.Repository
}

func NewUsecase(loans loanDomain.Repository, payments paymentDomain.Repository, users userDomain.Repository) *Usecase {
	return &Usecase{loans: loans, payments: payments, users: users}
}

func (u *Usecase) GetLoan(ctx context.Context, in GetLoanInput) (*loanUC.LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("loan", in.LoanID)
		}
		return nil, err
	}
	dto := loanUC.ToDTO(l)
	return &dto, nil
}

// ListLoans tolerates bad paging (defaults) and unknown filter values (empty
// result, never an error).
func (u *Usecase) ListLoans(ctx context.Context, in ListLoansInput) (*LoanPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	f := loanDomain.ListFilter{
		Status:  loanDomain.Status(in.Status),
		UserID:  in.UserID,
		Overdue: in.Overdue,
		Now:     time.Now().UTC(),
		Offset:  (page - 1) * limit,
		Limit:   limit,
	}
	rows, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]loanUC.LoanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, loanUC.ToDTO(&rows[i]))
	}
	return &LoanPage{Loans: out, Page: page, Limit: limit}, nil
}

func (u *Usecase) PortfolioReport(ctx context.Context, _ PortfolioReportInput) (*PortfolioReport, error) {
	principal, err := u.loans.SumPrincipal(ctx, "")
	if err != nil {
		return nil, err
	}
	outstanding, err := u.loans.SumOutstanding(ctx, "")
	if err != nil {
		return nil, err
	}
	counts, err := u.loans.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}

	report := &PortfolioReport{
		TotalPrincipal:   principal,
		TotalOutstanding: outstanding,
		CountsByStatus:   make(map[string]int64, len(counts)),
	}
	for _, c := range counts {
		report.CountsByStatus[string(c.Status)] = c.Count
	}
	return report, nil
}

func (u *Usecase) UserReport(ctx context.Context, in UserReportInput) (*UserReport, error) {
	usr, err := u.users.GetByUserID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", in.UserID)
		}
		return nil, err
	}

	borrowed, err := u.loans.SumPrincipal(ctx, usr.UserID)
	if err != nil {
		return nil, err
	}
	outstanding, err := u.loans.SumOutstanding(ctx, usr.UserID)
	if err != nil {
		return nil, err
	}
	repaid, err := u.payments.SumByPayerID(ctx, usr.UserID)
	if err != nil {
		return nil, err
	}
	counts, err := u.loans.CountByStatus(ctx, usr.UserID)
	if err != nil {
		return nil, err
	}

	report := &UserReport{
		UserID:           usr.UserID,
		TotalBorrowed:    borrowed,
		TotalRepaid:      repaid,
		TotalOutstanding: outstanding,
		CountsByStatus:   make(map[string]int64, len(counts)),
	}
	for _, c := range counts {
		report.CountsByStatus[string(c.Status)] = c.Count
	}
	return report, nil
}
