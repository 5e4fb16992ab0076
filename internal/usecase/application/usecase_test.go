package application

import (
	"context"
	"strings"
	"testing"
	"time"

	appDomain "loanserve-backend/internal/domain/application"
	loanDomain "loanserve-backend/internal/domain/loan"
	notifDomain "loanserve-backend/internal/domain/notification"
	userDomain "loanserve-backend/internal/domain/user"
	"loanserve-backend/internal/testutil/memstore"
	"loanserve-backend/internal/testutil/sinkmock"
	"loanserve-backend/pkg/apperr"
)

const (
	testUserID     = "11111111111111111111111111111111"
	testReviewerID = "99999999999999999999999999999999"
)

func seedActiveUser(st *memstore.Store) {
	st.SeedUser(userDomain.User{
		UserID: testUserID,
		Name:   "Budi",
		Email:  "budi@example.com",
		Role:   userDomain.RoleRegular,
		Active: true,
	})
}

func seedPendingApplication(st *memstore.Store, applicationID string, principal float64, term int) {
	st.SeedApplication(appDomain.LoanApplication{
		ApplicationID: applicationID,
		UserID:        testUserID,
		Principal:     principal,
		TermMonths:    term,
		Employment:    appDomain.Employed,
		Status:        appDomain.StatusPending,
		AppliedAt:     time.Now().UTC(),
	})
}

func TestApply_CreatesPendingApplication(t *testing.T) {
	st := memstore.New()
	seedActiveUser(st)
	sink := sinkmock.New()
	uc := NewUsecase(st, sink, 12.0)

	dto, err := uc.Apply(context.Background(), ApplyInput{
		UserID:        testUserID,
		Principal:     1200,
		Purpose:       "working capital",
		TermMonths:    12,
		MonthlyIncome: 900,
		Employment:    appDomain.SelfEmployed,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if dto.Status != string(appDomain.StatusPending) {
		t.Fatalf("status = %q, want pending", dto.Status)
	}
	if len(dto.ApplicationID) != 32 {
		t.Fatalf("application id not 32 chars: %q", dto.ApplicationID)
	}

	stored, ok := st.Application(dto.ApplicationID)
	if !ok {
		t.Fatalf("application %s not persisted", dto.ApplicationID)
	}
	if stored.Principal != 1200 || stored.TermMonths != 12 {
		t.Fatalf("stored application mismatch: %+v", stored)
	}

	notifs := st.Notifications()
	if len(notifs) != 1 || notifs[0].Type != notifDomain.TypeApplicationReceived {
		t.Fatalf("expected one application_received notification, got %+v", notifs)
	}
	if got := sink.Delivered(); len(got) != 1 {
		t.Fatalf("expected one delivered notification, got %d", len(got))
	}
}

func TestApply_ValidationErrors(t *testing.T) {
	st := memstore.New()
	seedActiveUser(st)
	uc := NewUsecase(st, sinkmock.New(), 12.0)

	cases := []struct {
		name string
		in   ApplyInput
		kind apperr.Kind
	}{
		{"zero principal", ApplyInput{UserID: testUserID, Principal: 0, TermMonths: 12, Employment: appDomain.Employed}, apperr.KindValidation},
		{"negative principal", ApplyInput{UserID: testUserID, Principal: -10, TermMonths: 12, Employment: appDomain.Employed}, apperr.KindValidation},
		{"odd term", ApplyInput{UserID: testUserID, Principal: 100, TermMonths: 13, Employment: appDomain.Employed}, apperr.KindValidation},
		{"unknown employment", ApplyInput{UserID: testUserID, Principal: 100, TermMonths: 12, Employment: "freelancer"}, apperr.KindValidation},
		{"unknown user", ApplyInput{UserID: strings.Repeat("f", 32), Principal: 100, TermMonths: 12, Employment: appDomain.Employed}, apperr.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Apply(context.Background(), tc.in); !apperr.IsKind(err, tc.kind) {
				t.Fatalf("kind = %q (%v), want %q", apperr.KindOf(err), err, tc.kind)
			}
		})
	}
}

func TestApply_DeactivatedUser(t *testing.T) {
	st := memstore.New()
	st.SeedUser(userDomain.User{UserID: testUserID, Email: "x@y.z", Active: false})
	uc := NewUsecase(st, sinkmock.New(), 12.0)

	_, err := uc.Apply(context.Background(), ApplyInput{
		UserID: testUserID, Principal: 100, TermMonths: 12, Employment: appDomain.Employed,
	})
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("kind = %q, want invalid_state", apperr.KindOf(err))
	}
	if len(st.Notifications()) != 0 {
		t.Fatalf("no notification should be persisted on failure")
	}
}

func TestApprove_CreatesLoanWithComputedTerms(t *testing.T) {
	st := memstore.New()
	seedActiveUser(st)
	appID := strings.Repeat("a", 32)
	seedPendingApplication(st, appID, 1200, 12)
	sink := sinkmock.New()
	uc := NewUsecase(st, sink, 12.0)

	dto, err := uc.Approve(context.Background(), ApproveInput{ApplicationID: appID, ReviewerID: testReviewerID})
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// 1200 at 12% over 12 months: 1% monthly, 144 interest, 112 monthly.
	if dto.TotalAmount != 1344 {
		t.Fatalf("total = %v, want 1344", dto.TotalAmount)
	}
	if dto.Monthly != 112 {
		t.Fatalf("monthly = %v, want 112", dto.Monthly)
	}
	if dto.Application.Status != string(appDomain.StatusApproved) {
		t.Fatalf("application status = %q, want approved", dto.Application.Status)
	}
	if dto.Application.ReviewerID != testReviewerID || dto.Application.ReviewedAt == nil {
		t.Fatalf("reviewer not recorded: %+v", dto.Application)
	}

	l, ok := st.Loan(dto.LoanID)
	if !ok {
		t.Fatalf("loan %s not persisted", dto.LoanID)
	}
	if l.Status != loanDomain.StatusApproved {
		t.Fatalf("loan status = %q, want approved", l.Status)
	}
	if l.RemainingBalance != 1344 || l.TotalAmount != 1344 || l.MonthlyPayment != 112 {
		t.Fatalf("loan terms mismatch: %+v", l)
	}
	if l.ApplicationID != appID || l.UserID != testUserID {
		t.Fatalf("loan lineage mismatch: %+v", l)
	}

	notifs := st.Notifications()
	if len(notifs) != 1 || notifs[0].Type != notifDomain.TypeApplicationApproved {
		t.Fatalf("expected one application_approved notification, got %+v", notifs)
	}
}

func TestApprove_SecondApproveFails(t *testing.T) {
	st := memstore.New()
	seedActiveUser(st)
	appID := strings.Repeat("a", 32)
	seedPendingApplication(st, appID, 1200, 12)
	uc := NewUsecase(st, sinkmock.New(), 12.0)

	if _, err := uc.Approve(context.Background(), ApproveInput{ApplicationID: appID, ReviewerID: testReviewerID}); err != nil {
		t.Fatalf("first Approve: %v", err)
	}
	_, err := uc.Approve(context.Background(), ApproveInput{ApplicationID: appID, ReviewerID: testReviewerID})
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("second approve kind = %q, want invalid_state", apperr.KindOf(err))
	}
}

func TestApprove_UnknownApplication(t *testing.T) {
	uc := NewUsecase(memstore.New(), sinkmock.New(), 12.0)
	_, err := uc.Approve(context.Background(), ApproveInput{ApplicationID: strings.Repeat("0", 32)})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("kind = %q, want not_found", apperr.KindOf(err))
	}
}

func TestReject_SetsStatusAndReason(t *testing.T) {
	st := memstore.New()
	seedActiveUser(st)
	appID := strings.Repeat("b", 32)
	seedPendingApplication(st, appID, 500, 6)
	uc := NewUsecase(st, sinkmock.New(), 12.0)

	dto, err := uc.Reject(context.Background(), RejectInput{ApplicationID: appID, ReviewerID: testReviewerID, Reason: "insufficient income"})
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if dto.Status != string(appDomain.StatusRejected) || dto.RejectionReason != "insufficient income" {
		t.Fatalf("unexpected dto: %+v", dto)
	}

	stored, _ := st.Application(appID)
	if stored.Status != appDomain.StatusRejected {
		t.Fatalf("stored status = %q, want rejected", stored.Status)
	}
	notifs := st.Notifications()
	if len(notifs) != 1 || notifs[0].Type != notifDomain.TypeApplicationRejected {
		t.Fatalf("expected one application_rejected notification, got %+v", notifs)
	}
}

func TestReject_RequiresReason(t *testing.T) {
	uc := NewUsecase(memstore.New(), sinkmock.New(), 12.0)
	_, err := uc.Reject(context.Background(), RejectInput{ApplicationID: strings.Repeat("b", 32)})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("kind = %q, want validation", apperr.KindOf(err))
	}
}

func TestReject_AfterApproveFails(t *testing.T) {
	st := memstore.New()
	seedActiveUser(st)
	appID := strings.Repeat("c", 32)
	seedPendingApplication(st, appID, 500, 6)
	uc := NewUsecase(st, sinkmock.New(), 12.0)

	if _, err := uc.Approve(context.Background(), ApproveInput{ApplicationID: appID, ReviewerID: testReviewerID}); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	_, err := uc.Reject(context.Background(), RejectInput{ApplicationID: appID, ReviewerID: testReviewerID, Reason: "late"})
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Fatalf("kind = %q, want invalid_state", apperr.KindOf(err))
	}
}

func TestApprove_CanceledContextLeavesStoreUntouched(t *testing.T) {
	st := memstore.New()
	seedActiveUser(st)
	appID := strings.Repeat("d", 32)
	seedPendingApplication(st, appID, 500, 6)
	uc := NewUsecase(st, sinkmock.New(), 12.0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := uc.Approve(ctx, ApproveInput{ApplicationID: appID, ReviewerID: testReviewerID}); err == nil {
		t.Fatalf("expected error from canceled context")
	}

	stored, _ := st.Application(appID)
	if stored.Status != appDomain.StatusPending {
		t.Fatalf("application mutated despite canceled context: %+v", stored)
	}
	if len(st.Notifications()) != 0 {
		t.Fatalf("notifications written despite canceled context")
	}
}
