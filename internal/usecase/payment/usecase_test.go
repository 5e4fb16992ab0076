package payment

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	loanDomain "loanserve-backend/internal/domain/loan"
	notifDomain "loanserve-backend/internal/domain/notification"
	paymentDomain "loanserve-backend/internal/domain/payment"
	userDomain "loanserve-backend/internal/domain/user"
	"loanserve-backend/internal/testutil/memstore"
	"loanserve-backend/internal/testutil/sinkmock"
	"loanserve-backend/pkg/apperr"
)

const (
	testLoanID  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testPayerID = "11111111111111111111111111111111"
)

// seedActiveLoan stores an active 12x112 loan with the given balance left,
// plus its payer and full schedule.
func seedActiveLoan(st *memstore.Store, remaining float64) {
	st.SeedUser(userDomain.User{UserID: testPayerID, Email: "payer@example.com", Active: true})
	now := time.Now().UTC()
	st.SeedLoan(loanDomain.Loan{
		LoanID:           testLoanID,
		UserID:           testPayerID,
		Principal:        1200,
		AnnualRate:       12,
		TermMonths:       12,
		Status:           loanDomain.StatusActive,
		MonthlyPayment:   112,
		TotalAmount:      1344,
		RemainingBalance: remaining,
		AppliedAt:        now,
		DisbursedAt:      &now,
	})
}

func seedSchedule(st *memstore.Store) {
	now := time.Now().UTC()
	rows := make([]loanDomain.RepaymentSchedule, 0, 12)
	for i := 1; i <= 12; i++ {
		rows = append(rows, loanDomain.RepaymentSchedule{
			LoanID:        testLoanID,
			InstallmentNo: i,
			DueDate:       now.AddDate(0, i, 0),
			Principal:     100,
			Interest:      12,
			Total:         112,
		})
	}
	st.SeedSchedule(rows...)
}

func TestRecord_PartialPayment(t *testing.T) {
	st := memstore.New()
	seedActiveLoan(st, 1344)
	sink := sinkmock.New()
	uc := NewUsecase(st, sink)

	receipt, err := uc.Record(context.Background(), RecordInput{
		LoanID:    testLoanID,
		PayerID:   testPayerID,
		Amount:    112,
		Method:    paymentDomain.MethodBankTransfer,
		Reference: "ref-001",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if receipt.RemainingBalance != 1232 {
		t.Fatalf("remaining = %v, want 1232", receipt.RemainingBalance)
	}
	if receipt.LoanCompleted {
		t.Fatalf("partial payment must not complete the loan")
	}

	l, _ := st.Loan(testLoanID)
	if l.Status != loanDomain.StatusActive || l.RemainingBalance != 1232 {
		t.Fatalf("stored loan mismatch: %+v", l)
	}

	payments := st.Payments()
	if len(payments) != 1 || payments[0].Reference != "ref-001" || payments[0].Status != paymentDomain.StatusSettled {
		t.Fatalf("unexpected payments: %+v", payments)
	}

	txns := st.Transactions()
	if len(txns) != 1 || txns[0].Type != "payment" || txns[0].Amount != 112 {
		t.Fatalf("expected one payment transaction of 112, got %+v", txns)
	}

	notifs := st.Notifications()
	if len(notifs) != 1 || notifs[0].Type != notifDomain.TypePaymentReceived {
		t.Fatalf("expected payment_received notification, got %+v", notifs)
	}
	if got := sink.Delivered(); len(got) != 1 {
		t.Fatalf("expected one delivered notification, got %d", len(got))
	}
}

func TestRecord_FinalPaymentCompletesLoan(t *testing.T) {
	st := memstore.New()
	seedActiveLoan(st, 112)
	uc := NewUsecase(st, sinkmock.New())

	receipt, err := uc.Record(context.Background(), RecordInput{
		LoanID:  testLoanID,
		PayerID: testPayerID,
		Amount:  112,
		Method:  paymentDomain.MethodEwallet,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !receipt.LoanCompleted || receipt.RemainingBalance != 0 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if receipt.Reference == "" {
		t.Fatalf("reference should be generated when omitted")
	}

	l, _ := st.Loan(testLoanID)
	if l.Status != loanDomain.StatusCompleted || l.CompletedAt == nil {
		t.Fatalf("loan not completed: %+v", l)
	}

	notifs := st.Notifications()
	if len(notifs) != 1 || notifs[0].Type != notifDomain.TypeLoanCompleted {
		t.Fatalf("expected loan_completed notification, got %+v", notifs)
	}
}

func TestRecord_MarksCoveredInstallments(t *testing.T) {
	st := memstore.New()
	seedActiveLoan(st, 1344)
	seedSchedule(st)
	uc := NewUsecase(st, sinkmock.New())

	// One and a half installments: only the first row flips.
	if _, err := uc.Record(context.Background(), RecordInput{
		LoanID: testLoanID, PayerID: testPayerID, Amount: 168, Method: paymentDomain.MethodCash, Reference: "r1",
	}); err != nil {
		t.Fatalf("Record 1: %v", err)
	}
	rows := st.Schedules(testLoanID)
	if !rows[0].Paid || rows[1].Paid {
		t.Fatalf("after 168 repaid want rows [paid, unpaid, ...], got %v %v", rows[0].Paid, rows[1].Paid)
	}

	// Topping up past the second installment flips it too.
	if _, err := uc.Record(context.Background(), RecordInput{
		LoanID: testLoanID, PayerID: testPayerID, Amount: 56, Method: paymentDomain.MethodCash, Reference: "r2",
	}); err != nil {
		t.Fatalf("Record 2: %v", err)
	}
	rows = st.Schedules(testLoanID)
	if !rows[1].Paid || rows[2].Paid {
		t.Fatalf("after 224 repaid want second row paid and third unpaid, got %v %v", rows[1].Paid, rows[2].Paid)
	}
}

func TestRecord_OverpaymentGoesNegative(t *testing.T) {
	st := memstore.New()
	seedActiveLoan(st, 100)
	uc := NewUsecase(st, sinkmock.New())

	receipt, err := uc.Record(context.Background(), RecordInput{
		LoanID:  testLoanID,
		PayerID: testPayerID,
		Amount:  150,
		Method:  paymentDomain.MethodCash,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if receipt.RemainingBalance != -50 {
		t.Fatalf("remaining = %v, want -50 (no clamping)", receipt.RemainingBalance)
	}
	if !receipt.LoanCompleted {
		t.Fatalf("overshooting payment should complete the loan")
	}
}

func TestRecord_DuplicateReferenceConflicts(t *testing.T) {
	st := memstore.New()
	seedActiveLoan(st, 1344)
	uc := NewUsecase(st, sinkmock.New())

	in := RecordInput{
		LoanID:    testLoanID,
		PayerID:   testPayerID,
		Amount:    112,
		Method:    paymentDomain.MethodDebitCard,
		Reference: "ref-dup",
	}
	if _, err := uc.Record(context.Background(), in); err != nil {
		t.Fatalf("first Record: %v", err)
	}
	_, err := uc.Record(context.Background(), in)
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("kind = %q, want conflict", apperr.KindOf(err))
	}

	if got := len(st.Payments()); got != 1 {
		t.Fatalf("payments = %d, want exactly 1 after duplicate", got)
	}
	l, _ := st.Loan(testLoanID)
	if l.RemainingBalance != 1232 {
		t.Fatalf("balance = %v, want single decrement to 1232", l.RemainingBalance)
	}
	if got := len(st.Transactions()); got != 1 {
		t.Fatalf("ledger rows = %d, want 1", got)
	}
}

func TestRecord_ValidationErrors(t *testing.T) {
	st := memstore.New()
	seedActiveLoan(st, 1344)
	uc := NewUsecase(st, sinkmock.New())

	if _, err := uc.Record(context.Background(), RecordInput{LoanID: testLoanID, PayerID: testPayerID, Amount: 0, Method: paymentDomain.MethodCash}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("zero amount kind = %q, want validation", apperr.KindOf(err))
	}
	if _, err := uc.Record(context.Background(), RecordInput{LoanID: testLoanID, PayerID: testPayerID, Amount: -5, Method: paymentDomain.MethodCash}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("negative amount kind = %q, want validation", apperr.KindOf(err))
	}
	if _, err := uc.Record(context.Background(), RecordInput{LoanID: testLoanID, PayerID: testPayerID, Amount: 10, Method: "gold"}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("bad method kind = %q, want validation", apperr.KindOf(err))
	}
}

func TestRecord_UnknownLoanAndPayer(t *testing.T) {
	st := memstore.New()
	seedActiveLoan(st, 1344)
	uc := NewUsecase(st, sinkmock.New())

	if _, err := uc.Record(context.Background(), RecordInput{LoanID: strings.Repeat("0", 32), PayerID: testPayerID, Amount: 10, Method: paymentDomain.MethodCash}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown loan kind = %q, want not_found", apperr.KindOf(err))
	}
	if _, err := uc.Record(context.Background(), RecordInput{LoanID: testLoanID, PayerID: strings.Repeat("f", 32), Amount: 10, Method: paymentDomain.MethodCash}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("unknown payer kind = %q, want not_found", apperr.KindOf(err))
	}
}

// Two payers racing to settle the same remaining balance: both payments are
// accepted, but the completion transition fires exactly once.
func TestRecord_ConcurrentPayoffCompletesOnce(t *testing.T) {
	st := memstore.New()
	seedActiveLoan(st, 112)
	uc := NewUsecase(st, sinkmock.New())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Record(context.Background(), RecordInput{
				LoanID:    testLoanID,
				PayerID:   testPayerID,
				Amount:    112,
				Method:    paymentDomain.MethodBankTransfer,
				Reference: "race-" + string(rune('a'+i)),
			})
		}(i)
	}
	wg.Wait()

	if errs[0] != nil || errs[1] != nil {
		t.Fatalf("both payments should be accepted: %v / %v", errs[0], errs[1])
	}

	l, _ := st.Loan(testLoanID)
	if l.Status != loanDomain.StatusCompleted {
		t.Fatalf("loan status = %q, want completed", l.Status)
	}
	if l.RemainingBalance != -112 {
		t.Fatalf("balance = %v, want -112 after double payoff", l.RemainingBalance)
	}
	if got := len(st.Payments()); got != 2 {
		t.Fatalf("payments = %d, want 2", got)
	}

	completed := 0
	for _, n := range st.Notifications() {
		if n.Type == notifDomain.TypeLoanCompleted {
			completed++
		}
	}
	if completed != 1 {
		t.Fatalf("loan_completed notifications = %d, want exactly 1", completed)
	}
}
