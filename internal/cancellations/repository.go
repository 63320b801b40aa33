package cancellations

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines the contract for cancellation data operations
type Repository interface {
	Create(ctx context.Context, cancellation *Cancellation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Cancellation, error)
	GetByBookingRef(ctx context.Context, bookingRef string) ([]Cancellation, error)
	HasProcessedForProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new cancellation repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new cancellation record
func (r *repository) Create(ctx context.Context, cancellation *Cancellation) error {
	if err := r.db.WithContext(ctx).Create(cancellation).Error; err != nil {
		return fmt.Errorf("failed to create cancellation: %w", err)
	}
	return nil
}

// GetByID retrieves a cancellation by its ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Cancellation, error) {
	var cancellation Cancellation
	err := r.db.WithContext(ctx).First(&cancellation, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cancellation not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get cancellation: %w", err)
	}
	return &cancellation, nil
}

// GetByBookingRef retrieves all cancellation records for a booking, newest first
func (r *repository) GetByBookingRef(ctx context.Context, bookingRef string) ([]Cancellation, error) {
	var cancellations []Cancellation
	err := r.db.WithContext(ctx).
		Where("booking_ref = ?", bookingRef).
		Order("requested_at DESC").
		Find(&cancellations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cancellations for booking: %w", err)
	}
	return cancellations, nil
}

// HasProcessedForProduct reports whether a refunded cancellation already
// exists for the product. A booking is only refundable once.
func (r *repository) HasProcessedForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Cancellation{}).
		Where("product_id = ? AND status = ?", productID, string(StatusProcessed)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing cancellations: %w", err)
	}
	return count > 0, nil
}
