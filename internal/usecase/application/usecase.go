package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	appDomain "loanserve-backend/internal/domain/application"
	loanDomain "loanserve-backend/internal/domain/loan"
	notifDomain "loanserve-backend/internal/domain/notification"
	"loanserve-backend/internal/domain/uow"
	"loanserve-backend/pkg/apperr"
	"loanserve-backend/pkg/id"
)

type Usecase struct {
	uow        uow.UnitOfWork
	sink       notifDomain.Sink
	annualRate float64
}

// NewUsecase: annualRate is the fixed nominal annual rate (percent) applied
// to every approved application.
func NewUsecase(tx uow.UnitOfWork, sink notifDomain.Sink, annualRate float64) *Usecase {
	return &Usecase{uow: tx, sink: sink, annualRate: annualRate}
}

func (u *Usecase) deliver(ctx context.Context, n *notifDomain.Notification) {
	if u.sink == nil || n == nil {
		return
	}
	if err := u.sink.Deliver(ctx, n); err != nil {
		log.Printf("notification delivery failed (%s): %v", n.NotificationID, err)
	}
}

func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*ApplicationDTO, error) {
	if in.Principal <= 0 {
		return nil, apperr.Validation("principal must be positive")
	}
	if !appDomain.ValidTerm(in.TermMonths) {
		return nil, apperr.Validation(fmt.Sprintf("term_months must be one of %v", appDomain.AllowedTermMonths))
	}
	if !in.Employment.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("unknown employment status %q", in.Employment))
	}

	var dto *ApplicationDTO
	var created *notifDomain.Notification

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByUserID(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user", in.UserID)
			}
			return err
		}
		if !usr.Active {
			return apperr.InvalidState("user is deactivated", "user", in.UserID)
		}

		a := &appDomain.LoanApplication{
			ApplicationID: id.NewID32(),
			UserID:        in.UserID,
			Principal:     in.Principal,
			Purpose:       in.Purpose,
			TermMonths:    in.TermMonths,
			MonthlyIncome: in.MonthlyIncome,
			Employment:    in.Employment,
			Status:        appDomain.StatusPending,
			AppliedAt:     time.Now().UTC(),
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}

		created = notifDomain.New(in.UserID, notifDomain.TypeApplicationReceived,
			"Application received",
			fmt.Sprintf("Your loan application %s for %.2f over %d months is under review.", a.ApplicationID, a.Principal, a.TermMonths))
		if err := r.Notifications.Create(ctx, created); err != nil {
			return err
		}

		d := toDTO(a)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.deliver(ctx, created)
	return dto, nil
}

// Approve flips a pending application to approved and creates the Loan from
// its terms in the same transaction. The loan is born approved; disbursement
// is a separate step.
func (u *Usecase) Approve(ctx context.Context, in ApproveInput) (*ApprovalDTO, error) {
	var dto *ApprovalDTO
	var created *notifDomain.Notification

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, in.ApplicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("application", in.ApplicationID)
			}
			return err
		}
		if a.Status != appDomain.StatusPending {
			return apperr.InvalidState("only pending applications can be approved", "application", a.ApplicationID)
		}

		now := time.Now().UTC()
		a.Status = appDomain.StatusApproved
		a.ReviewerID = in.ReviewerID
		a.ReviewedAt = &now
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		terms := loanDomain.ComputeTerms(a.Principal, u.annualRate, a.TermMonths)
		l := &loanDomain.Loan{
			LoanID:           id.NewID32(),
			UserID:           a.UserID,
			ApplicationID:    a.ApplicationID,
			Principal:        a.Principal,
			AnnualRate:       u.annualRate,
			TermMonths:       a.TermMonths,
			Status:           loanDomain.StatusApproved,
			MonthlyPayment:   terms.MonthlyPayment,
			TotalAmount:      terms.TotalAmount,
			RemainingBalance: terms.TotalAmount,
			AppliedAt:        a.AppliedAt,
			ApprovedAt:       &now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		created = notifDomain.New(a.UserID, notifDomain.TypeApplicationApproved,
			"Application approved",
			fmt.Sprintf("Application %s was approved. Loan %s: %.2f monthly over %d months.", a.ApplicationID, l.LoanID, l.MonthlyPayment, l.TermMonths))
		if err := r.Notifications.Create(ctx, created); err != nil {
			return err
		}

		dto = &ApprovalDTO{
			Application: toDTO(a),
			LoanID:      l.LoanID,
			TotalAmount: l.TotalAmount,
			Monthly:     l.MonthlyPayment,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.deliver(ctx, created)
	return dto, nil
}

func (u *Usecase) Reject(ctx context.Context, in RejectInput) (*ApplicationDTO, error) {
	if in.Reason == "" {
		return nil, apperr.Validation("rejection reason is required")
	}

	var dto *ApplicationDTO
	var created *notifDomain.Notification

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, in.ApplicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("application", in.ApplicationID)
			}
			return err
		}
		if a.Status != appDomain.StatusPending {
			return apperr.InvalidState("only pending applications can be rejected", "application", a.ApplicationID)
		}

		now := time.Now().UTC()
		a.Status = appDomain.StatusRejected
		a.ReviewerID = in.ReviewerID
		a.ReviewedAt = &now
		a.RejectionReason = in.Reason
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		created = notifDomain.New(a.UserID, notifDomain.TypeApplicationRejected,
			"Application rejected",
			fmt.Sprintf("Application %s was rejected: %s", a.ApplicationID, in.Reason))
		if err := r.Notifications.Create(ctx, created); err != nil {
			return err
		}

		d := toDTO(a)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.deliver(ctx, created)
	return dto, nil
}
