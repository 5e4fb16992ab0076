package payment

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
	paymentDomain "loanserve-backend/internal/domain/payment"
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

// markInstallments flips the earliest unpaid schedule rows whose cumulative
// total fits within what has been repaid so far. A partially covered row
// stays unpaid.
func markInstallments(ctx context.Context, r uow.Repos, l *loanDomain.Loan) error {
	rows, err := r.Schedules.ListByLoanID(ctx, l.LoanID)
	if err != nil {
		return err
	}
	repaid := l.TotalAmount - l.RemainingBalance
	covered := 0.0
	for i := range rows {
		covered += rows[i].Total
		if rows[i].Paid {
			continue
		}
		if covered > repaid+1e-9 {
			break
		}
		rows[i].Paid = true
		if err := r.Schedules.Save(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// Record applies one payment against a loan: payment row, balance decrement,
// ledger append and notification commit together. The balance is not clamped
// at zero; an overshooting payment is accepted in full.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*ReceiptDTO, error) {
	if in.Amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}
	if !in.Method.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("unknown payment method %q", in.Method))
	}
	reference := in.Reference
	if reference == "" {
		reference = id.NewReference()
	}

	var receipt *ReceiptDTO
	var created *notifDomain.Notification

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		payer, err := r.Users.GetByUserID(ctx, in.PayerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user", in.PayerID)
			}
			return err
		}

		now := time.Now().UTC()
		p := &paymentDomain.Payment{
			PaymentID: id.NewID32(),
			LoanID:    l.LoanID,
			PayerID:   payer.UserID,
			Amount:    in.Amount,
			Method:    in.Method,
			Status:    paymentDomain.StatusSettled,
			Reference: reference,
			PaidAt:    now,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("payment reference already used for this loan", "payment", reference)
			}
			return err
		}

		l.RemainingBalance -= in.Amount
		completed := l.RemainingBalance <= 0 && l.Status == loanDomain.StatusActive
		if completed {
			l.Status = loanDomain.StatusCompleted
			l.CompletedAt = &now
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := markInstallments(ctx, r, l); err != nil {
			return err
		}

		txn := &ledgerDomain.Transaction{
			TransactionID: id.NewID32(),
			LoanID:        l.LoanID,
			Type:          ledgerDomain.TypePayment,
			Amount:        in.Amount,
			Description:   fmt.Sprintf("payment on loan %s by %s", l.LoanID, payer.UserID),
			Reference:     reference,
		}
		if err := r.Ledger.Append(ctx, txn); err != nil {
			return err
		}

		if completed {
			created = notifDomain.New(l.UserID, notifDomain.TypeLoanCompleted,
				"Loan repaid",
				fmt.Sprintf("Loan %s is fully repaid. Thank you.", l.LoanID))
		} else {
			created = notifDomain.New(l.UserID, notifDomain.TypePaymentReceived,
				"Payment received",
				fmt.Sprintf("Payment of %.2f received on loan %s. Remaining balance: %.2f.", in.Amount, l.LoanID, l.RemainingBalance))
		}
		if err := r.Notifications.Create(ctx, created); err != nil {
			return err
		}

		receipt = &ReceiptDTO{
			PaymentID:        p.PaymentID,
			TransactionID:    txn.TransactionID,
			LoanID:           l.LoanID,
			PayerID:          payer.UserID,
			Amount:           in.Amount,
			Method:           string(in.Method),
			Reference:        reference,
			RemainingBalance: l.RemainingBalance,
			LoanCompleted:    completed,
			PaidAt:           now,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("loan", in.LoanID)
		}
		return nil, err
	}
	u.deliver(ctx, created)
	return receipt, nil
}
