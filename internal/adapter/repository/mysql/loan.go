package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "loanserve-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate takes a row lock so concurrent workflow operations on
// the same loan serialize. sqlite (tests) locks the whole database and does
// not parse FOR UPDATE, so the clause is mysql-only.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := q.Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Overdue {
		sub := r.db.Model(&loanDomain.RepaymentSchedule{}).
			Select("loan_id").
			Where("paid = ? AND due_date < ?", false, f.Now)
		q = q.Where("loan_id IN (?)", sub)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []loanDomain.Loan
	res := q.Order("id DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByStatus(ctx context.Context, userID string) ([]loanDomain.StatusCount, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var out []loanDomain.StatusCount
	res := q.Scan(&out)
	return out, res.Error
}

func (r *LoanRepository) SumPrincipal(ctx context.Context, userID string) (float64, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var sum float64
	res := q.Select("COALESCE(SUM(principal), 0)").Scan(&sum)
	return sum, res.Error
}

func (r *LoanRepository) SumOutstanding(ctx context.Context, userID string) (float64, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("status = ?", loanDomain.StatusActive)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var sum float64
	res := q.Select("COALESCE(SUM(remaining_balance), 0)").Scan(&sum)
	return sum, res.Error
}

type ScheduleRepository struct{ db *gorm.DB }

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository { return &ScheduleRepository{db: db} }

func (r *ScheduleRepository) CreateBatch(ctx context.Context, rows []loanDomain.RepaymentSchedule) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *ScheduleRepository) ListByLoanID(ctx context.Context, loanID string) ([]loanDomain.RepaymentSchedule, error) {
	var out []loanDomain.RepaymentSchedule
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_no ASC").
		Find(&out)
	return out, res.Error
}

func (r *ScheduleRepository) Save(ctx context.Context, row *loanDomain.RepaymentSchedule) error {
	return r.db.WithContext(ctx).Save(row).Error
}
