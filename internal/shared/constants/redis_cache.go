package constants

import "time"

// Redis Cache Configuration
// Centralizes Redis cache keys and TTL values for the refundly application.
// Pattern: refundly:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // very stable data
	TTL_STATIC_SHORT = 6 * time.Hour  // provider reference data
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // product details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // product listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // upcoming services
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // cancellation records
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // refund quotes
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "refundly"
)

// ================== PRODUCTS MODULE ==================

// Product Cache Keys
const (
	CACHE_KEY_PRODUCTS_LIST       = CACHE_PREFIX + ":products:list"           // + :page:X:limit:Y
	CACHE_KEY_PRODUCT_DETAIL      = CACHE_PREFIX + ":products:detail:uuid:"   // + product-id
	CACHE_KEY_PRODUCT_BY_BOOKING  = CACHE_PREFIX + ":products:booking:ref:"   // + booking-ref
	CACHE_KEY_PRODUCTS_BY_PROVIDE = CACHE_PREFIX + ":products:provider:name:" // + provider
)

// Product Cache TTLs
const (
	TTL_PRODUCT_LIST   = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_PRODUCT_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== CANCELLATIONS MODULE ==================

// Cancellation Cache Keys
const (
	CACHE_KEY_CANCELLATION_DETAIL     = CACHE_PREFIX + ":cancellations:detail:uuid:" // + cancellation-id
	CACHE_KEY_CANCELLATION_BY_BOOKING = CACHE_PREFIX + ":cancellations:booking:ref:" // + booking-ref
)

// Cancellation Cache TTLs
const (
	TTL_CANCELLATION_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_PRODUCTS_ALL      = CACHE_PREFIX + ":products:*"
	PATTERN_INVALIDATE_CANCELLATIONS_ALL = CACHE_PREFIX + ":cancellations:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildProductDetailKey(productID string) string {
	return CACHE_KEY_PRODUCT_DETAIL + productID
}

func BuildProductByBookingKey(bookingRef string) string {
	return CACHE_KEY_PRODUCT_BY_BOOKING + bookingRef
}

func BuildCancellationDetailKey(cancellationID string) string {
	return CACHE_KEY_CANCELLATION_DETAIL + cancellationID
}
