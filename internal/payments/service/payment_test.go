package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	bookingserrors "reservio/internal/bookings/errors"
	"reservio/internal/notifications"
	paymentserrors "reservio/internal/payments/errors"
	"reservio/internal/payments/gateway"
	"reservio/pkg/config"
	mongotx "reservio/pkg/db/mongo"
	apperrors "reservio/pkg/errors"
	"reservio/pkg/logger"
	"reservio/pkg/model"
)

type mockPaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*model.Payment
	nextID   int
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{payments: make(map[string]*model.Payment)}
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.payments {
		if p.BookingID == payment.BookingID {
			return paymentserrors.ErrDuplicatePayment
		}
	}

	m.nextID++
	payment.ID = fmt.Sprintf("pay-%d", m.nextID)
	payment.CreatedAt = time.Now().UTC()
	clone := *payment
	m.payments[payment.ID] = &clone
	return nil
}

func (m *mockPaymentRepo) FindByID(_ context.Context, id string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.payments[id]
	if !ok {
		return nil, paymentserrors.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockPaymentRepo) FindByBookingID(_ context.Context, bookingID string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.payments {
		if p.BookingID == bookingID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, paymentserrors.ErrNotFound
}

func (m *mockPaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.payments {
		if p.TransactionID == transactionID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, paymentserrors.ErrNotFound
}

func (m *mockPaymentRepo) Update(_ context.Context, id string, payment *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.payments[id]
	if !ok {
		return paymentserrors.ErrNotFound
	}
	p.Method = payment.Method
	p.TransactionID = payment.TransactionID
	p.Status = payment.Status
	p.FailureReason = payment.FailureReason
	p.ProcessedAt = payment.ProcessedAt
	return nil
}

func (m *mockPaymentRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

func (m *mockPaymentRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

func (m *mockPaymentRepo) seed(p *model.Payment) *model.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	if p.ID == "" {
		p.ID = fmt.Sprintf("pay-%d", m.nextID)
	}
	clone := *p
	m.payments[p.ID] = &clone
	return p
}

type mockBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{bookings: make(map[string]*model.Booking)}
}

func (m *mockBookingStore) FindByID(_ context.Context, id string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (m *mockBookingStore) UpdateStatus(_ context.Context, id string, change model.StatusChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return bookingserrors.ErrNotFound
	}
	if len(change.From) > 0 {
		matched := false
		for _, from := range change.From {
			if b.Status == from {
				matched = true
				break
			}
		}
		if !matched {
			return bookingserrors.ErrStatusChanged
		}
	}
	b.Status = change.To
	b.UpdatedAt = &change.UpdatedAt
	if change.ConfirmedAt != nil {
		b.ConfirmedAt = change.ConfirmedAt
	}
	if change.CompletedAt != nil {
		b.CompletedAt = change.CompletedAt
	}
	return nil
}

func (m *mockBookingStore) seed(b *model.Booking) *model.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *b
	m.bookings[b.ID] = &clone
	return b
}

func (m *mockBookingStore) status(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].Status
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newService(repo *mockPaymentRepo, store *mockBookingStore, gw gateway.Gateway) PaymentService {
	return &paymentService{
		repo:     repo,
		bookings: store,
		gateway:  gw,
		notifier: notifications.NewNoop(),
		cfg:      testConfig(),
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestSettleSuccess(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingPending, AmountCents: 5000})
	stub := &gateway.Stub{Outcome: gateway.Outcome{Accepted: true}}

	payment, err := newService(repo, store, stub).Settle(context.Background(), "bk-1", "card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != model.PaymentSuccess {
		t.Errorf("expected status %s, got %s", model.PaymentSuccess, payment.Status)
	}
	if payment.AmountCents != 5000 {
		t.Errorf("expected amount 5000, got %d", payment.AmountCents)
	}
	if !strings.HasPrefix(payment.TransactionID, "TXN_") {
		t.Errorf("expected TXN_ transaction id, got %s", payment.TransactionID)
	}
	if payment.ProcessedAt == nil {
		t.Error("expected processed_at to be stamped")
	}
	if store.status("bk-1") != model.BookingConfirmed {
		t.Errorf("expected booking Confirmed, got %s", store.status("bk-1"))
	}
}

func TestSettleDeclinedMarksBookingPaymentFailed(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingPending, AmountCents: 5000})
	stub := &gateway.Stub{Outcome: gateway.Outcome{Accepted: false, Reason: gateway.DeclineReason}}

	payment, err := newService(repo, store, stub).Settle(context.Background(), "bk-1", "card")
	if err != nil {
		t.Fatalf("a declined authorization is an outcome, not an error: %v", err)
	}

	if payment.Status != model.PaymentFailed {
		t.Errorf("expected status %s, got %s", model.PaymentFailed, payment.Status)
	}
	if payment.FailureReason != gateway.DeclineReason {
		t.Errorf("expected failure reason %q, got %q", gateway.DeclineReason, payment.FailureReason)
	}
	if payment.ProcessedAt != nil {
		t.Error("declined payments must not carry processed_at")
	}
	if store.status("bk-1") != model.BookingPaymentFailed {
		t.Errorf("expected booking PaymentFailed, got %s", store.status("bk-1"))
	}
}

func TestSettleDuplicateLeavesFirstPaymentUntouched(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingPending, AmountCents: 5000})
	stub := &gateway.Stub{Outcome: gateway.Outcome{Accepted: true}}
	svc := newService(repo, store, stub)

	first, err := svc.Settle(context.Background(), "bk-1", "card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Settle(context.Background(), "bk-1", "card")
	assertCode(t, err, apperrors.CodeInvalidState) // booking already Confirmed

	// Force the booking back to a payable status; the payment row itself
	// must still block a second charge.
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingPending, AmountCents: 5000})
	_, err = svc.Settle(context.Background(), "bk-1", "card")
	assertCode(t, err, apperrors.CodeDuplicatePayment)

	stored, findErr := repo.FindByID(context.Background(), first.ID)
	if findErr != nil {
		t.Fatalf("unexpected error: %v", findErr)
	}
	if stored.Status != model.PaymentSuccess || stored.TransactionID != first.TransactionID {
		t.Error("first payment row must remain untouched after a duplicate attempt")
	}
	if repo.count() != 1 {
		t.Errorf("expected exactly one payment row, got %d", repo.count())
	}
}

func TestSettleRetryAfterDeclineOverwritesRow(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingPaymentFailed, AmountCents: 5000})
	failed := repo.seed(&model.Payment{
		BookingID:     "bk-1",
		AmountCents:   5000,
		Method:        "card",
		TransactionID: "TXN_OLD",
		Status:        model.PaymentFailed,
		FailureReason: gateway.DeclineReason,
	})
	stub := &gateway.Stub{Outcome: gateway.Outcome{Accepted: true}}

	payment, err := newService(repo, store, stub).Settle(context.Background(), "bk-1", "bank_transfer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.ID != failed.ID {
		t.Errorf("retry must reuse the existing row, got id %s want %s", payment.ID, failed.ID)
	}
	if payment.Status != model.PaymentSuccess {
		t.Errorf("expected status %s, got %s", model.PaymentSuccess, payment.Status)
	}
	if payment.TransactionID == "TXN_OLD" {
		t.Error("retry must issue a fresh transaction id")
	}
	if repo.count() != 1 {
		t.Errorf("expected exactly one payment row, got %d", repo.count())
	}
	if store.status("bk-1") != model.BookingConfirmed {
		t.Errorf("expected booking Confirmed, got %s", store.status("bk-1"))
	}

	stored, err := repo.FindByID(context.Background(), failed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Method != "bank_transfer" {
		t.Errorf("retry must persist the new payment method, got %q", stored.Method)
	}
	if stored.TransactionID != payment.TransactionID {
		t.Error("stored row must match the returned payment")
	}
}

func TestSettleRejectsNonPayableBooking(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingConfirmed, AmountCents: 5000})
	stub := &gateway.Stub{Outcome: gateway.Outcome{Accepted: true}}

	_, err := newService(repo, store, stub).Settle(context.Background(), "bk-1", "card")
	assertCode(t, err, apperrors.CodeInvalidState)

	if stub.Calls != 0 {
		t.Errorf("gateway must not be called for a non-payable booking, got %d calls", stub.Calls)
	}
}

func TestSettleBookingNotFound(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	stub := &gateway.Stub{Outcome: gateway.Outcome{Accepted: true}}

	_, err := newService(repo, store, stub).Settle(context.Background(), "missing", "card")
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestRefundSuccessForcesBookingRefunded(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingCompleted, AmountCents: 5000})
	processedAt := time.Now().Add(-time.Hour)
	paid := repo.seed(&model.Payment{
		BookingID:     "bk-1",
		AmountCents:   5000,
		TransactionID: "TXN_A",
		Status:        model.PaymentSuccess,
		ProcessedAt:   &processedAt,
	})

	payment, err := newService(repo, store, &gateway.Stub{}).Refund(context.Background(), paid.ID, "customer complaint")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Status != model.PaymentRefunded {
		t.Errorf("expected status %s, got %s", model.PaymentRefunded, payment.Status)
	}
	if payment.FailureReason != "customer complaint" {
		t.Errorf("expected refund reason to be recorded, got %q", payment.FailureReason)
	}
	if payment.ProcessedAt == nil || !payment.ProcessedAt.After(processedAt) {
		t.Error("expected processed_at restamped to the refund time")
	}
	if store.status("bk-1") != model.BookingRefunded {
		t.Errorf("expected booking Refunded, got %s", store.status("bk-1"))
	}
}

func TestRefundRejectsFailedPayment(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingPaymentFailed})
	failed := repo.seed(&model.Payment{
		BookingID: "bk-1",
		Status:    model.PaymentFailed,
	})

	_, err := newService(repo, store, &gateway.Stub{}).Refund(context.Background(), failed.ID, "whatever")
	assertCode(t, err, apperrors.CodeInvalidState)

	if store.status("bk-1") != model.BookingPaymentFailed {
		t.Errorf("expected booking unchanged, got %s", store.status("bk-1"))
	}
}

func TestRefundRejectsSecondRefund(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	store.seed(&model.Booking{ID: "bk-1", Status: model.BookingCompleted})
	paid := repo.seed(&model.Payment{
		BookingID: "bk-1",
		Status:    model.PaymentSuccess,
	})
	svc := newService(repo, store, &gateway.Stub{})

	if _, err := svc.Refund(context.Background(), paid.ID, "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Refund(context.Background(), paid.ID, "second")
	assertCode(t, err, apperrors.CodeInvalidState)
}

func TestRefundPaymentNotFound(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()

	_, err := newService(repo, store, &gateway.Stub{}).Refund(context.Background(), "missing", "reason")
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestValidate(t *testing.T) {
	repo := newMockPaymentRepo()
	store := newMockBookingStore()
	repo.seed(&model.Payment{BookingID: "bk-1", TransactionID: "TXN_GOOD", Status: model.PaymentSuccess})
	repo.seed(&model.Payment{BookingID: "bk-2", TransactionID: "TXN_BAD", Status: model.PaymentFailed})
	svc := newService(repo, store, &gateway.Stub{})

	valid, payment, err := svc.Validate(context.Background(), "TXN_GOOD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid || payment == nil {
		t.Error("expected a successful payment to validate")
	}

	valid, payment, err = svc.Validate(context.Background(), "TXN_BAD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Error("a failed payment must not validate")
	}
	if payment == nil {
		t.Error("expected the failed payment to be returned for inspection")
	}

	valid, payment, err = svc.Validate(context.Background(), "TXN_UNKNOWN")
	if err != nil {
		t.Fatalf("an unknown transaction is invalid, not an error: %v", err)
	}
	if valid || payment != nil {
		t.Error("expected unknown transaction to be invalid with no payment")
	}
}
