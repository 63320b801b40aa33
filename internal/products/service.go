package products

import (
	"context"
	"fmt"
	"time"

	"refundly/internal/policy"
	"refundly/internal/shared/constants"
	"refundly/pkg/cache"

	"github.com/google/uuid"
)

// Service interface defines the contract for product catalog business logic
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	GetProductByBookingRef(ctx context.Context, bookingRef string) (*Product, error)
	ListProducts(ctx context.Context, page, limit int) ([]Product, int64, error)
	MarkActivated(ctx context.Context, id uuid.UUID) (*Product, error)
}

// service implements the Service interface
type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new product service instance. The cache is optional;
// when nil every read goes straight to the repository.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

// CreateProduct validates and stores a new catalog record
func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	// Reject duplicate booking references up front
	if _, err := s.repo.GetByBookingRef(ctx, req.BookingRef); err == nil {
		return nil, fmt.Errorf("product already exists for booking: %s", req.BookingRef)
	}

	serviceDateTime, err := time.Parse(time.RFC3339, req.ServiceDateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid service_datetime: %w", err)
	}

	var activationDeadline *time.Time
	if req.ActivationDeadline != "" {
		deadline, err := time.Parse(time.RFC3339, req.ActivationDeadline)
		if err != nil {
			return nil, fmt.Errorf("invalid activation_deadline: %w", err)
		}
		activationDeadline = &deadline
	}

	windows := make([]policy.CancellationWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		windows = append(windows, policy.CancellationWindow{
			HoursBeforeService: w.HoursBeforeService,
			RefundPercentage:   w.RefundPercentage,
			Description:        w.Description,
		})
	}

	product := &Product{
		BookingRef:         req.BookingRef,
		Provider:           req.Provider,
		Type:               req.Type,
		Name:               req.Name,
		PriceAmount:        req.PriceAmount,
		PriceCurrency:      req.PriceCurrency,
		ServiceDateTime:    serviceDateTime,
		ActivationDeadline: activationDeadline,
		CancellationPolicy: policy.CancellationPolicy{
			Windows:         windows,
			CanCancel:       req.CanCancel,
			CancelCondition: policy.CancelCondition(req.CancelCondition),
		},
		Metadata: policy.Metadata{
			IsActivated: req.IsActivated,
			AccessType:  policy.AccessType(req.AccessType),
		},
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateListings(ctx)
	return product, nil
}

// GetProduct retrieves a product by ID, cache-aside
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var product Product
	key := constants.BuildProductDetailKey(id.String())
	err := s.cache.GetOrSet(ctx, key, constants.TTL_PRODUCT_DETAIL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductByBookingRef retrieves a product by booking reference, cache-aside
func (s *service) GetProductByBookingRef(ctx context.Context, bookingRef string) (*Product, error) {
	if s.cache == nil {
		return s.repo.GetByBookingRef(ctx, bookingRef)
	}

	var product Product
	key := constants.BuildProductByBookingKey(bookingRef)
	err := s.cache.GetOrSet(ctx, key, constants.TTL_PRODUCT_DETAIL, func() (interface{}, error) {
		return s.repo.GetByBookingRef(ctx, bookingRef)
	}, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts retrieves a page of catalog records
func (s *service) ListProducts(ctx context.Context, page, limit int) ([]Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

// MarkActivated flips the activation flag in the product metadata. Providers
// report activation out of band; the catalog only records it.
func (s *service) MarkActivated(ctx context.Context, id uuid.UUID) (*Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Metadata.IsActivated = true
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to mark product activated: %w", err)
	}

	s.invalidateProduct(ctx, product)
	return product, nil
}

func (s *service) invalidateProduct(ctx context.Context, product *Product) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, constants.BuildProductDetailKey(product.ID.String()))
	_ = s.cache.Delete(ctx, constants.BuildProductByBookingKey(product.BookingRef))
}

func (s *service) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PRODUCTS_ALL)
}
