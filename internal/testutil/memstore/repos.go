package memstore

import (
	"context"

	"gorm.io/gorm"

	appDomain "loanserve-backend/internal/domain/application"
	ledgerDomain "loanserve-backend/internal/domain/ledger"
	loanDomain "loanserve-backend/internal/domain/loan"
	notifDomain "loanserve-backend/internal/domain/notification"
	paymentDomain "loanserve-backend/internal/domain/payment"
	userDomain "loanserve-backend/internal/domain/user"
)

// The repos below assume the store mutex is already held by WithinTx /
// WithinLoanTx. They return gorm sentinels so usecases translate them the
// same way they translate the real repositories'.

type userRepo struct{ st *state }

func (r *userRepo) Create(ctx context.Context, u *userDomain.User) error {
	for _, existing := range r.st.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.st.users[u.UserID] = *u
	return nil
}

func (r *userRepo) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	u, ok := r.st.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepo) Save(ctx context.Context, u *userDomain.User) error {
	r.st.users[u.UserID] = *u
	return nil
}

type appRepo struct{ st *state }

func (r *appRepo) Create(ctx context.Context, a *appDomain.LoanApplication) error {
	r.st.apps[a.ApplicationID] = *a
	return nil
}

func (r *appRepo) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.LoanApplication, error) {
	a, ok := r.st.apps[applicationID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *appRepo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.LoanApplication, error) {
	return r.GetByApplicationID(ctx, applicationID)
}

func (r *appRepo) ListByUserID(ctx context.Context, userID string) ([]appDomain.LoanApplication, error) {
	var out []appDomain.LoanApplication
	for _, a := range r.st.apps {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *appRepo) Save(ctx context.Context, a *appDomain.LoanApplication) error {
	r.st.apps[a.ApplicationID] = *a
	return nil
}

type loanRepo struct{ st *state }

func (r *loanRepo) Create(ctx context.Context, l *loanDomain.Loan) error {
	r.st.loans[l.LoanID] = *l
	return nil
}

func (r *loanRepo) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	l, ok := r.st.loans[loanID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *loanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.GetByLoanID(ctx, loanID)
}

func (r *loanRepo) Save(ctx context.Context, l *loanDomain.Loan) error {
	r.st.loans[l.LoanID] = *l
	return nil
}

func (r *loanRepo) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	for _, l := range r.st.loans {
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *loanRepo) CountByStatus(ctx context.Context, userID string) ([]loanDomain.StatusCount, error) {
	counts := make(map[loanDomain.Status]int64)
	for _, l := range r.st.loans {
		if userID != "" && l.UserID != userID {
			continue
		}
		counts[l.Status]++
	}
	out := make([]loanDomain.StatusCount, 0, len(counts))
	for s, c := range counts {
		out = append(out, loanDomain.StatusCount{Status: s, Count: c})
	}
	return out, nil
}

func (r *loanRepo) SumPrincipal(ctx context.Context, userID string) (float64, error) {
	var sum float64
	for _, l := range r.st.loans {
		if userID != "" && l.UserID != userID {
			continue
		}
		sum += l.Principal
	}
	return sum, nil
}

func (r *loanRepo) SumOutstanding(ctx context.Context, userID string) (float64, error) {
	var sum float64
	for _, l := range r.st.loans {
		if l.Status != loanDomain.StatusActive {
			continue
		}
		if userID != "" && l.UserID != userID {
			continue
		}
		sum += l.RemainingBalance
	}
	return sum, nil
}

type scheduleRepo struct{ st *state }

func (r *scheduleRepo) CreateBatch(ctx context.Context, rows []loanDomain.RepaymentSchedule) error {
	r.st.schedules = append(r.st.schedules, rows...)
	return nil
}

func (r *scheduleRepo) ListByLoanID(ctx context.Context, loanID string) ([]loanDomain.RepaymentSchedule, error) {
	var out []loanDomain.RepaymentSchedule
	for _, row := range r.st.schedules {
		if row.LoanID == loanID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *scheduleRepo) Save(ctx context.Context, row *loanDomain.RepaymentSchedule) error {
	for i := range r.st.schedules {
		if r.st.schedules[i].LoanID == row.LoanID && r.st.schedules[i].InstallmentNo == row.InstallmentNo {
			r.st.schedules[i] = *row
			return nil
		}
	}
	r.st.schedules = append(r.st.schedules, *row)
	return nil
}

type paymentRepo struct{ st *state }

func (r *paymentRepo) Create(ctx context.Context, p *paymentDomain.Payment) error {
	for _, existing := range r.st.payments {
		if existing.LoanID == p.LoanID && existing.Reference == p.Reference {
			return gorm.ErrDuplicatedKey
		}
	}
	r.st.payments = append(r.st.payments, *p)
	return nil
}

func (r *paymentRepo) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	for _, p := range r.st.payments {
		if p.PaymentID == paymentID {
			out := p
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *paymentRepo) ListByLoanID(ctx context.Context, loanID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	for _, p := range r.st.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *paymentRepo) SumByPayerID(ctx context.Context, payerID string) (float64, error) {
	var sum float64
	for _, p := range r.st.payments {
		if p.PayerID == payerID {
			sum += p.Amount
		}
	}
	return sum, nil
}

type ledgerRepo struct{ st *state }

func (r *ledgerRepo) Append(ctx context.Context, t *ledgerDomain.Transaction) error {
	r.st.txns = append(r.st.txns, *t)
	return nil
}

func (r *ledgerRepo) ListByLoanID(ctx context.Context, loanID string) ([]ledgerDomain.Transaction, error) {
	var out []ledgerDomain.Transaction
	for _, t := range r.st.txns {
		if t.LoanID == loanID {
			out = append(out, t)
		}
	}
	return out, nil
}

type notifRepo struct{ st *state }

func (r *notifRepo) Create(ctx context.Context, n *notifDomain.Notification) error {
	r.st.notifs = append(r.st.notifs, *n)
	return nil
}

func (r *notifRepo) GetByNotificationID(ctx context.Context, notificationID string) (*notifDomain.Notification, error) {
	for _, n := range r.st.notifs {
		if n.NotificationID == notificationID {
			out := n
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *notifRepo) ListByUserID(ctx context.Context, userID string, unreadOnly bool) ([]notifDomain.Notification, error) {
	var out []notifDomain.Notification
	for _, n := range r.st.notifs {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *notifRepo) Save(ctx context.Context, n *notifDomain.Notification) error {
	for i := range r.st.notifs {
		if r.st.notifs[i].NotificationID == n.NotificationID {
			r.st.notifs[i] = *n
			return nil
		}
	}
	r.st.notifs = append(r.st.notifs, *n)
	return nil
}
