package cancellations

import (
	"context"
	"errors"
	"testing"
	"time"

	"refundly/internal/notifications"
	"refundly/internal/policy"
	"refundly/internal/products"
	"refundly/pkg/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	created   []*Cancellation
	processed bool
}

func (f *fakeRepo) Create(ctx context.Context, c *Cancellation) error {
	c.ID = uuid.New()
	f.created = append(f.created, c)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Cancellation, error) {
	for _, c := range f.created {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("cancellation not found")
}

func (f *fakeRepo) GetByBookingRef(ctx context.Context, ref string) ([]Cancellation, error) {
	var out []Cancellation
	for _, c := range f.created {
		if c.BookingRef == ref {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasProcessedForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	return f.processed, nil
}

type fakeCatalog struct {
	byID      map[uuid.UUID]*products.Product
	byBooking map[string]*products.Product
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*products.Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, errors.New("product not found")
}

func (f *fakeCatalog) GetProductByBookingRef(ctx context.Context, ref string) (*products.Product, error) {
	if p, ok := f.byBooking[ref]; ok {
		return p, nil
	}
	return nil, errors.New("product not found")
}

type fakeProducer struct {
	events []*notifications.CancellationEvent
}

func (f *fakeProducer) PublishEvent(ctx context.Context, e *notifications.CancellationEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeProducer) Close() error                          { return nil }
func (f *fakeProducer) HealthCheck(ctx context.Context) error { return nil }

func (f *fakeProducer) typesSeen() []notifications.EventType {
	out := make([]notifications.EventType, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

func transferProduct(serviceTime time.Time) *products.Product {
	return &products.Product{
		ID:              uuid.New(),
		BookingRef:      "MZ-48271",
		Provider:        string(policy.ProviderMozio),
		Type:            string(policy.ProductTypeAirportTransfer),
		Name:            "Airport transfer JFK to Manhattan",
		PriceAmount:     60,
		PriceCurrency:   "USD",
		ServiceDateTime: serviceTime,
		CancellationPolicy: policy.CancellationPolicy{
			CanCancel: true,
			Windows: []policy.CancellationWindow{
				{HoursBeforeService: 24, RefundPercentage: 100},
				{HoursBeforeService: 4, RefundPercentage: 50},
			},
		},
	}
}

func loungeProduct(serviceTime time.Time) *products.Product {
	return &products.Product{
		ID:              uuid.New(),
		BookingRef:      "DP-10533",
		Provider:        string(policy.ProviderDragonpass),
		Type:            string(policy.ProductTypeLoungeAccess),
		PriceAmount:     45,
		PriceCurrency:   "USD",
		ServiceDateTime: serviceTime,
		CancellationPolicy: policy.CancellationPolicy{
			CanCancel: true,
			Windows: []policy.CancellationWindow{
				{HoursBeforeService: 24, RefundPercentage: 100},
			},
		},
		Metadata: policy.Metadata{AccessType: policy.AccessTypeMultiUse},
	}
}

func newTestService(repo *fakeRepo, catalog *fakeCatalog, producer *fakeProducer) Service {
	return NewService(repo, catalog, policy.NewEngine(), producer, nil, logger.New())
}

func TestRequestCancellationValidation(t *testing.T) {
	serviceTime := time.Now().Add(48 * time.Hour)
	lounge := loungeProduct(serviceTime)
	catalog := &fakeCatalog{
		byID:      map[uuid.UUID]*products.Product{lounge.ID: lounge},
		byBooking: map[string]*products.Product{lounge.BookingRef: lounge},
	}

	tests := []struct {
		name    string
		req     CancelRequest
		wantErr error
	}{
		{
			name:    "no identifiers",
			req:     CancelRequest{},
			wantErr: ErrNoIdentifier,
		},
		{
			name:    "malformed booking time",
			req:     CancelRequest{ProductID: lounge.ID.String(), LoungeID: "LHR-T5-01", BookingTime: "yesterday"},
			wantErr: ErrInvalidBookingTime,
		},
		{
			name:    "lounge without lounge id",
			req:     CancelRequest{ProductID: lounge.ID.String()},
			wantErr: ErrLoungeIDRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			producer := &fakeProducer{}
			svc := newTestService(repo, catalog, producer)

			_, err := svc.RequestCancellation(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RequestCancellation error = %v, want %v", err, tt.wantErr)
			}
			if len(repo.created) != 0 {
				t.Errorf("validation failure must not persist records, got %d", len(repo.created))
			}
			if len(producer.events) != 0 {
				t.Errorf("validation failure must not publish events, got %d", len(producer.events))
			}
		})
	}
}

func TestRequestCancellationFullRefund(t *testing.T) {
	serviceTime := time.Now().Add(48 * time.Hour)
	transfer := transferProduct(serviceTime)
	catalog := &fakeCatalog{
		byID:      map[uuid.UUID]*products.Product{transfer.ID: transfer},
		byBooking: map[string]*products.Product{transfer.BookingRef: transfer},
	}
	repo := &fakeRepo{}
	producer := &fakeProducer{}
	svc := newTestService(repo, catalog, producer)

	resp, err := svc.RequestCancellation(context.Background(), CancelRequest{
		ProductID: transfer.ID.String(),
		Reason:    "flight rebooked",
	})
	if err != nil {
		t.Fatalf("RequestCancellation failed: %v", err)
	}

	if resp.RefundPolicy != "full_refund" {
		t.Errorf("refund_policy = %q, want full_refund", resp.RefundPolicy)
	}
	if resp.RefundAmount != 60 || resp.CancellationFee != 0 {
		t.Errorf("refund/fee = %v/%v, want 60/0", resp.RefundAmount, resp.CancellationFee)
	}
	if resp.Status != string(StatusProcessed) {
		t.Errorf("status = %q, want %q", resp.Status, StatusProcessed)
	}
	if resp.ApplicableWindow == nil || resp.ApplicableWindow.HoursBeforeService != 24 {
		t.Errorf("applicable_window = %+v, want 24h tier", resp.ApplicableWindow)
	}

	if len(repo.created) != 1 {
		t.Fatalf("persisted records = %d, want 1", len(repo.created))
	}
	record := repo.created[0]
	if record.Status != string(StatusProcessed) {
		t.Errorf("stored status = %q, want %q", record.Status, StatusProcessed)
	}
	if record.Reason != "flight rebooked" {
		t.Errorf("stored reason = %q", record.Reason)
	}

	types := producer.typesSeen()
	if len(types) != 2 ||
		types[0] != notifications.EventTypeCancellationStarted ||
		types[1] != notifications.EventTypeCancellationCompleted {
		t.Errorf("published events = %v, want [STARTED COMPLETED]", types)
	}
	completed := producer.events[1]
	if completed.CancellationID == nil || *completed.CancellationID != record.ID {
		t.Errorf("completed event missing cancellation id")
	}
	if completed.RefundAmount == nil || *completed.RefundAmount != 60 {
		t.Errorf("completed event refund = %v, want 60", completed.RefundAmount)
	}
}

func TestRequestCancellationPolicyRejection(t *testing.T) {
	serviceTime := time.Now().Add(48 * time.Hour)
	transfer := transferProduct(serviceTime)
	transfer.CancellationPolicy.CanCancel = false
	catalog := &fakeCatalog{
		byID: map[uuid.UUID]*products.Product{transfer.ID: transfer},
	}
	repo := &fakeRepo{}
	producer := &fakeProducer{}
	svc := newTestService(repo, catalog, producer)

	resp, err := svc.RequestCancellation(context.Background(), CancelRequest{
		ProductID: transfer.ID.String(),
	})
	if err != nil {
		t.Fatalf("policy rejection must not be an error, got: %v", err)
	}

	if resp.RefundPolicy != "no_cancellation_allowed" {
		t.Errorf("refund_policy = %q, want no_cancellation_allowed", resp.RefundPolicy)
	}
	if resp.RefundAmount != 0 {
		t.Errorf("refund = %v, want 0", resp.RefundAmount)
	}
	if resp.Status != string(StatusRejected) {
		t.Errorf("status = %q, want %q", resp.Status, StatusRejected)
	}
	if len(repo.created) != 1 || repo.created[0].Status != string(StatusRejected) {
		t.Errorf("rejection must persist a REJECTED record")
	}
}

func TestRequestCancellationByBookingRef(t *testing.T) {
	serviceTime := time.Now().Add(10 * time.Hour)
	transfer := transferProduct(serviceTime)
	catalog := &fakeCatalog{
		byBooking: map[string]*products.Product{transfer.BookingRef: transfer},
	}
	repo := &fakeRepo{}
	producer := &fakeProducer{}
	svc := newTestService(repo, catalog, producer)

	resp, err := svc.RequestCancellation(context.Background(), CancelRequest{
		BookingID: transfer.BookingRef,
	})
	if err != nil {
		t.Fatalf("RequestCancellation failed: %v", err)
	}

	// 10 hours out hits the 4h/50% tier
	if resp.RefundPolicy != "50_percent_refund" {
		t.Errorf("refund_policy = %q, want 50_percent_refund", resp.RefundPolicy)
	}
	if resp.RefundAmount != 30 || resp.CancellationFee != 30 {
		t.Errorf("refund/fee = %v/%v, want 30/30", resp.RefundAmount, resp.CancellationFee)
	}
}

func TestRequestCancellationExplicitBookingTime(t *testing.T) {
	serviceTime := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	transfer := transferProduct(serviceTime)
	catalog := &fakeCatalog{
		byID: map[uuid.UUID]*products.Product{transfer.ID: transfer},
	}
	svc := newTestService(&fakeRepo{}, catalog, &fakeProducer{})

	// 30 hours before service: full refund tier
	at := serviceTime.Add(-30 * time.Hour).Format(time.RFC3339)
	resp, err := svc.RequestCancellation(context.Background(), CancelRequest{
		ProductID:   transfer.ID.String(),
		BookingTime: at,
	})
	if err != nil {
		t.Fatalf("RequestCancellation failed: %v", err)
	}
	if resp.RefundPolicy != "full_refund" {
		t.Errorf("refund_policy = %q, want full_refund", resp.RefundPolicy)
	}
}

func TestRequestCancellationAlreadyRefunded(t *testing.T) {
	serviceTime := time.Now().Add(48 * time.Hour)
	transfer := transferProduct(serviceTime)
	catalog := &fakeCatalog{
		byID: map[uuid.UUID]*products.Product{transfer.ID: transfer},
	}
	repo := &fakeRepo{processed: true}
	producer := &fakeProducer{}
	svc := newTestService(repo, catalog, producer)

	_, err := svc.RequestCancellation(context.Background(), CancelRequest{
		ProductID: transfer.ID.String(),
	})
	if !errors.Is(err, ErrAlreadyRefunded) {
		t.Fatalf("error = %v, want ErrAlreadyRefunded", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("duplicate refund must not persist a record")
	}
}

func TestQuoteRefundDoesNotPersistOrPublish(t *testing.T) {
	serviceTime := time.Now().Add(48 * time.Hour)
	transfer := transferProduct(serviceTime)
	catalog := &fakeCatalog{
		byID: map[uuid.UUID]*products.Product{transfer.ID: transfer},
	}
	repo := &fakeRepo{}
	producer := &fakeProducer{}
	svc := newTestService(repo, catalog, producer)

	quote, err := svc.QuoteRefund(context.Background(), CancelRequest{
		ProductID: transfer.ID.String(),
	})
	if err != nil {
		t.Fatalf("QuoteRefund failed: %v", err)
	}
	if quote.RefundPolicy != "full_refund" || quote.RefundAmount != 60 {
		t.Errorf("quote = %+v, want full_refund of 60", quote)
	}
	if len(repo.created) != 0 {
		t.Errorf("quote must not persist records, got %d", len(repo.created))
	}
	if len(producer.events) != 0 {
		t.Errorf("quote must not publish events, got %d", len(producer.events))
	}
}
