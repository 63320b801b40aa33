package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface defines the contract for product data operations
type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByBookingRef(ctx context.Context, bookingRef string) (*Product, error)
	List(ctx context.Context, page, limit int) ([]Product, int64, error)
	Update(ctx context.Context, product *Product) error
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new product repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new product record
func (r *repository) Create(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// GetByBookingRef retrieves a product by its booking reference
func (r *repository) GetByBookingRef(ctx context.Context, bookingRef string) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).First(&product, "booking_ref = ?", bookingRef).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found for booking: %s", bookingRef)
		}
		return nil, fmt.Errorf("failed to get product by booking ref: %w", err)
	}
	return &product, nil
}

// List retrieves a page of products ordered by service time
func (r *repository) List(ctx context.Context, page, limit int) ([]Product, int64, error) {
	var products []Product
	var total int64

	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	err := r.db.WithContext(ctx).
		Order("service_date_time ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

// Update saves changes to an existing product
func (r *repository) Update(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}
