package cancellations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"refundly/internal/notifications"
	"refundly/internal/policy"
	"refundly/internal/products"
	"refundly/internal/shared/constants"
	"refundly/pkg/cache"
	"refundly/pkg/logger"

	"github.com/google/uuid"
)

// Validation failures on the request itself. These map to 4xx responses and
// are never persisted; a policy rejection is not one of these.
var (
	ErrNoIdentifier       = errors.New("either product_id or booking_id must be provided")
	ErrInvalidBookingTime = errors.New("booking_time must be a valid RFC3339 timestamp")
	ErrLoungeIDRequired   = errors.New("lounge_id is required for lounge access cancellations")
	ErrAlreadyRefunded    = errors.New("a refund has already been processed for this booking")
)

// Service interface defines the contract for cancellation business logic
type Service interface {
	RequestCancellation(ctx context.Context, req CancelRequest) (*CancelResponse, error)
	QuoteRefund(ctx context.Context, req CancelRequest) (*QuoteResponse, error)
	GetCancellation(ctx context.Context, id uuid.UUID) (*Cancellation, error)
	GetCancellationsByBookingRef(ctx context.Context, bookingRef string) ([]Cancellation, error)
}

// ProductCatalog is the slice of the product service this module needs.
// Satisfied by products.Service.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*products.Product, error)
	GetProductByBookingRef(ctx context.Context, bookingRef string) (*products.Product, error)
}

// service implements the Service interface
type service struct {
	repo     Repository
	catalog  ProductCatalog
	engine   *policy.Engine
	producer notifications.Producer
	cache    cache.Service
	log      *logger.Logger
}

// NewService creates a new cancellation service instance
func NewService(repo Repository, catalog ProductCatalog, engine *policy.Engine,
	producer notifications.Producer, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		engine:   engine,
		producer: producer,
		cache:    cacheService,
		log:      log,
	}
}

// RequestCancellation validates the request, evaluates the product's
// cancellation policy and persists the decision. A no-refund outcome is a
// successful evaluation: it is stored with REJECTED status and returned to
// the caller, not surfaced as an error.
func (s *service) RequestCancellation(ctx context.Context, req CancelRequest) (*CancelResponse, error) {
	product, at, err := s.resolveRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.LogCancellationRequested(ctx, product.ID.String(), product.BookingRef)

	// One refund per booking
	refunded, err := s.repo.HasProcessedForProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if refunded {
		return nil, ErrAlreadyRefunded
	}

	started := notifications.NewEventBuilder().
		WithType(notifications.EventTypeCancellationStarted).
		WithProduct(product.ID, product.BookingRef, product.Provider).
		Build()
	if err := s.producer.PublishEvent(ctx, started); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish cancellation started event", err, nil)
	}

	decision := s.engine.Evaluate(product.ToPolicyProduct(), at)
	s.log.LogPolicyEvaluated(ctx, product.ID.String(), decision.PolicyName,
		decision.RefundAmount, decision.CancellationFee)

	now := time.Now()
	record := &Cancellation{
		ProductID:       product.ID,
		BookingRef:      product.BookingRef,
		Provider:        product.Provider,
		RefundAmount:    decision.RefundAmount,
		CancellationFee: decision.CancellationFee,
		RefundPolicy:    decision.PolicyName,
		Message:         decision.Message,
		MatchedWindow:   decision.MatchedWindow,
		Status:          statusForDecision(decision),
		Reason:          req.Reason,
		RequestedAt:     at,
		ProcessedAt:     &now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		failed := notifications.NewEventBuilder().
			WithType(notifications.EventTypeCancellationFailed).
			WithProduct(product.ID, product.BookingRef, product.Provider).
			WithFailure(err.Error()).
			Build()
		if pubErr := s.producer.PublishEvent(ctx, failed); pubErr != nil {
			s.log.ErrorWithContext(ctx, "Failed to publish cancellation failed event", pubErr, nil)
		}
		return nil, fmt.Errorf("failed to persist cancellation: %w", err)
	}

	completed := notifications.NewEventBuilder().
		WithType(notifications.EventTypeCancellationCompleted).
		WithProduct(product.ID, product.BookingRef, product.Provider).
		WithCancellation(record.ID).
		WithDecision(decision.RefundAmount, decision.CancellationFee, decision.PolicyName, decision.Message).
		Build()
	if err := s.producer.PublishEvent(ctx, completed); err != nil {
		s.log.ErrorWithContext(ctx, "Failed to publish cancellation completed event", err, nil)
	}

	s.log.LogCancellationProcessed(ctx, record.ID.String(), product.ID.String(), decision.PolicyName)

	return &CancelResponse{
		CancellationID:   record.ID,
		ProductID:        product.ID,
		BookingRef:       product.BookingRef,
		RefundAmount:     decision.RefundAmount,
		CancellationFee:  decision.CancellationFee,
		RefundPolicy:     decision.PolicyName,
		Message:          decision.Message,
		ApplicableWindow: decision.MatchedWindow,
		Status:           record.Status,
	}, nil
}

// QuoteRefund evaluates the policy without persisting or publishing anything
func (s *service) QuoteRefund(ctx context.Context, req CancelRequest) (*QuoteResponse, error) {
	product, at, err := s.resolveRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	decision := s.engine.Evaluate(product.ToPolicyProduct(), at)

	return &QuoteResponse{
		ProductID:        product.ID,
		BookingRef:       product.BookingRef,
		RefundAmount:     decision.RefundAmount,
		CancellationFee:  decision.CancellationFee,
		RefundPolicy:     decision.PolicyName,
		Message:          decision.Message,
		ApplicableWindow: decision.MatchedWindow,
	}, nil
}

// GetCancellation retrieves a cancellation record by ID, cache-aside
func (s *service) GetCancellation(ctx context.Context, id uuid.UUID) (*Cancellation, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}

	var record Cancellation
	key := constants.BuildCancellationDetailKey(id.String())
	err := s.cache.GetOrSet(ctx, key, constants.TTL_CANCELLATION_DETAIL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, &record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetCancellationsByBookingRef lists all cancellation records for a booking
func (s *service) GetCancellationsByBookingRef(ctx context.Context, bookingRef string) ([]Cancellation, error) {
	return s.repo.GetByBookingRef(ctx, bookingRef)
}

// resolveRequest validates the request fields and resolves the product.
// Resolution order: product_id first, then booking_id.
func (s *service) resolveRequest(ctx context.Context, req CancelRequest) (*products.Product, time.Time, error) {
	if req.ProductID == "" && req.BookingID == "" {
		return nil, time.Time{}, ErrNoIdentifier
	}

	at := time.Now()
	if req.BookingTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.BookingTime)
		if err != nil {
			return nil, time.Time{}, ErrInvalidBookingTime
		}
		at = parsed
	}

	var product *products.Product
	if req.ProductID != "" {
		id, err := uuid.Parse(req.ProductID)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("invalid product_id: %w", err)
		}
		product, err = s.catalog.GetProduct(ctx, id)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("product not found: %w", err)
		}
	} else {
		var err error
		product, err = s.catalog.GetProductByBookingRef(ctx, req.BookingID)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("product not found: %w", err)
		}
	}

	// Lounge cancellations must name the lounge being released
	if product.Provider == string(policy.ProviderDragonpass) &&
		product.Type == string(policy.ProductTypeLoungeAccess) && req.LoungeID == "" {
		return nil, time.Time{}, ErrLoungeIDRequired
	}

	return product, at, nil
}

// statusForDecision maps a policy decision to the stored record status. Every
// window match is PROCESSED, even a 0% tier; terminal rejections have no
// matched window and are stored as REJECTED.
func statusForDecision(decision policy.RefundDecision) string {
	if decision.MatchedWindow != nil {
		return string(StatusProcessed)
	}
	return string(StatusRejected)
}
