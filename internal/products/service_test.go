package products

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	byID      map[uuid.UUID]*Product
	byBooking map[string]*Product
	updates   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:      make(map[uuid.UUID]*Product),
		byBooking: make(map[string]*Product),
	}
}

func (f *fakeRepo) Create(ctx context.Context, p *Product) error {
	p.ID = uuid.New()
	f.byID[p.ID] = p
	f.byBooking[p.BookingRef] = p
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, errors.New("product not found")
}

func (f *fakeRepo) GetByBookingRef(ctx context.Context, ref string) (*Product, error) {
	if p, ok := f.byBooking[ref]; ok {
		return p, nil
	}
	return nil, errors.New("product not found")
}

func (f *fakeRepo) List(ctx context.Context, page, limit int) ([]Product, int64, error) {
	out := make([]Product, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Product) error {
	f.updates++
	f.byID[p.ID] = p
	return nil
}

func validCreateRequest() CreateProductRequest {
	return CreateProductRequest{
		BookingRef:      "MZ-55001",
		Provider:        "mozio",
		Type:            "airport_transfer",
		Name:            "Shared shuttle CDG to Paris",
		PriceAmount:     32,
		PriceCurrency:   "EUR",
		ServiceDateTime: time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		Windows: []WindowRequest{
			{HoursBeforeService: 24, RefundPercentage: 100},
		},
		CanCancel: true,
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	product, err := svc.CreateProduct(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if product.ID == uuid.Nil {
		t.Error("created product has no ID")
	}
	if !product.CancellationPolicy.CanCancel {
		t.Error("policy can_cancel not carried over")
	}
	if len(product.CancellationPolicy.Windows) != 1 {
		t.Fatalf("windows = %d, want 1", len(product.CancellationPolicy.Windows))
	}
	if product.CancellationPolicy.Windows[0].RefundPercentage != 100 {
		t.Errorf("window percentage = %v, want 100", product.CancellationPolicy.Windows[0].RefundPercentage)
	}
}

func TestCreateProductRejectsDuplicateBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	if _, err := svc.CreateProduct(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateProduct(context.Background(), validCreateRequest()); err == nil {
		t.Fatal("duplicate booking ref must be rejected")
	}
}

func TestCreateProductRejectsBadTimestamps(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateProductRequest)
	}{
		{
			name:   "malformed service datetime",
			mutate: func(r *CreateProductRequest) { r.ServiceDateTime = "next tuesday" },
		},
		{
			name:   "malformed activation deadline",
			mutate: func(r *CreateProductRequest) { r.ActivationDeadline = "2026-13-45" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := NewService(repo, nil)

			req := validCreateRequest()
			tt.mutate(&req)

			if _, err := svc.CreateProduct(context.Background(), req); err == nil {
				t.Error("expected error, got nil")
			}
			if len(repo.byID) != 0 {
				t.Errorf("invalid request must not persist, stored %d", len(repo.byID))
			}
		})
	}
}

func TestMarkActivated(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	product, err := svc.CreateProduct(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if product.Metadata.IsActivated {
		t.Fatal("new product must not be activated")
	}

	updated, err := svc.MarkActivated(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("MarkActivated failed: %v", err)
	}
	if !updated.Metadata.IsActivated {
		t.Error("product not marked activated")
	}
	if repo.updates != 1 {
		t.Errorf("repo updates = %d, want 1", repo.updates)
	}
}

func TestListProductsClampsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	if _, _, err := svc.ListProducts(context.Background(), -3, 5000); err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
}

func TestToPolicyProduct(t *testing.T) {
	deadline := time.Now().Add(24 * time.Hour)
	record := Product{
		ID:                 uuid.New(),
		BookingRef:         "AR-77001",
		Provider:           "airalo",
		Type:               "esim",
		PriceAmount:        19.5,
		PriceCurrency:      "USD",
		ServiceDateTime:    time.Now().Add(48 * time.Hour),
		ActivationDeadline: &deadline,
	}

	p := record.ToPolicyProduct()
	if p.ID != record.ID {
		t.Errorf("id = %v, want %v", p.ID, record.ID)
	}
	if string(p.Provider) != record.Provider || string(p.Type) != record.Type {
		t.Errorf("provider/type not carried over: %v/%v", p.Provider, p.Type)
	}
	if p.Price.Amount != 19.5 || p.Price.Currency != "USD" {
		t.Errorf("price = %+v", p.Price)
	}
	if p.ActivationDeadline == nil || !p.ActivationDeadline.Equal(deadline) {
		t.Errorf("activation deadline not carried over")
	}
}
