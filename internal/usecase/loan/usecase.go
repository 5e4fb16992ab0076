package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	ledgerDomain "loanserve-backend/internal/domain/ledger"
	loanDomain "loanserve-backend/internal/domain/loan"
	notifDomain "loanserve-backend/internal/domain/notification"
	"loanserve-backend/internal/domain/uow"
	"loanserve-backend/pkg/apperr"
	"loanserve-backend/pkg/id"
)

type Usecase struct {
	uow  uow.UnitOfWork
	sink notifDomain.Sink
}

func NewUsecase(tx uow.UnitOfWork, sink notifDomain.Sink) *Usecase {
	return &Usecase{uow: tx, sink: sink}
}

func (u *Usecase) deliver(ctx context.Context, n *notifDomain.Notification) {
	if u.sink == nil || n == nil {
		return
	}
	if err := u.sink.Deliver(ctx, n); err != nil {
		log.Printf("notification delivery failed (%s): %v", n.NotificationID, err)
	}
}

func notFoundOr(err error, entity, eid string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, eid)
	}
	return err
}

// buildSchedule spreads principal and interest evenly over the term, one
// installment per month starting one month after disbursement.
func buildSchedule(l *loanDomain.Loan, disbursedAt time.Time) []loanDomain.RepaymentSchedule {
	principalShare := l.Principal / float64(l.TermMonths)
	interestShare := (l.TotalAmount - l.Principal) / float64(l.TermMonths)
	rows := make([]loanDomain.RepaymentSchedule, 0, l.TermMonths)
	for i := 1; i <= l.TermMonths; i++ {
		rows = append(rows, loanDomain.RepaymentSchedule{
			LoanID:        l.LoanID,
			InstallmentNo: i,
			DueDate:       disbursedAt.AddDate(0, i, 0),
			Principal:     principalShare,
			Interest:      interestShare,
			Total:         l.MonthlyPayment,
		})
	}
	return rows
}

// Disburse releases funds on an approved loan: status goes active, the full
// repayment schedule is generated and a disbursement ledger row is appended,
// all in one transaction.
func (u *Usecase) Disburse(ctx context.Context, in DisburseInput) (*DisbursementReceipt, error) {
	if !in.Method.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("unknown payment method %q", in.Method))
	}
	reference := in.Reference
	if reference == "" {
		reference = id.NewReference()
	}

	var receipt *DisbursementReceipt
	var created *notifDomain.Notification

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusApproved {
			return apperr.InvalidState("only approved loans can be disbursed", "loan", l.LoanID)
		}

		now := time.Now().UTC()
		l.Status = loanDomain.StatusActive
		l.DisbursedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := r.Schedules.CreateBatch(ctx, buildSchedule(l, now)); err != nil {
			return err
		}

		txn := &ledgerDomain.Transaction{
			TransactionID: id.NewID32(),
			LoanID:        l.LoanID,
			Type:          ledgerDomain.TypeDisbursement,
			Amount:        l.Principal,
			Description:   fmt.Sprintf("disbursement of loan %s", l.LoanID),
			Reference:     reference,
		}
		if err := r.Ledger.Append(ctx, txn); err != nil {
			return err
		}

		created = notifDomain.New(l.UserID, notifDomain.TypeLoanDisbursed,
			"Loan disbursed",
			fmt.Sprintf("Loan %s: %.2f has been released. First installment due %s.", l.LoanID, l.Principal, now.AddDate(0, 1, 0).Format("2006-01-02")))
		if err := r.Notifications.Create(ctx, created); err != nil {
			return err
		}

		receipt = &DisbursementReceipt{
			TransactionID: txn.TransactionID,
			LoanID:        l.LoanID,
			Amount:        l.Principal,
			Method:        string(in.Method),
			Reference:     reference,
			DisbursedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "loan", in.LoanID)
	}
	u.deliver(ctx, created)
	return receipt, nil
}

// Reject is the loan-level rejection, distinct from application rejection:
// it only applies to loans still pending.
func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*LoanDTO, error) {
	var dto *LoanDTO
	var created *notifDomain.Notification

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusPending {
			return apperr.InvalidState("only pending loans can be rejected", "loan", l.LoanID)
		}

		l.Status = loanDomain.StatusRejected
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		created = notifDomain.New(l.UserID, notifDomain.TypeLoanRejected,
			"Loan rejected",
			fmt.Sprintf("Loan %s was rejected.", l.LoanID))
		if err := r.Notifications.Create(ctx, created); err != nil {
			return err
		}

		d := ToDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "loan", in.LoanID)
	}
	u.deliver(ctx, created)
	return dto, nil
}

// Close is the administrative early closure of an active loan.
func (u *Usecase) Close(ctx context.Context, in CloseInput) (*LoanDTO, error) {
	var dto *LoanDTO
	var created *notifDomain.Notification

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return apperr.InvalidState("only active loans can be closed", "loan", l.LoanID)
		}

		now := time.Now().UTC()
		l.Status = loanDomain.StatusCompleted
		l.CompletedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		created = notifDomain.New(l.UserID, notifDomain.TypeLoanCompleted,
			"Loan closed",
			fmt.Sprintf("Loan %s was closed administratively.", l.LoanID))
		if err := r.Notifications.Create(ctx, created); err != nil {
			return err
		}

		d := ToDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "loan", in.LoanID)
	}
	u.deliver(ctx, created)
	return dto, nil
}
