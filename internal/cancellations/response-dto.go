package cancellations

import (
	"refundly/internal/policy"

	"github.com/google/uuid"
)

// CancelResponse is the decision returned for a cancellation request
type CancelResponse struct {
	CancellationID   uuid.UUID                  `json:"cancellation_id"`
	ProductID        uuid.UUID                  `json:"product_id"`
	BookingRef       string                     `json:"booking_ref"`
	RefundAmount     float64                    `json:"refund_amount"`
	CancellationFee  float64                    `json:"cancellation_fee"`
	RefundPolicy     string                     `json:"refund_policy"`
	Message          string                     `json:"message"`
	ApplicableWindow *policy.CancellationWindow `json:"applicable_window,omitempty"`
	Status           string                     `json:"status"`
}

// QuoteResponse is a non-binding refund preview; nothing is persisted
type QuoteResponse struct {
	ProductID        uuid.UUID                  `json:"product_id"`
	BookingRef       string                     `json:"booking_ref"`
	RefundAmount     float64                    `json:"refund_amount"`
	CancellationFee  float64                    `json:"cancellation_fee"`
	RefundPolicy     string                     `json:"refund_policy"`
	Message          string                     `json:"message"`
	ApplicableWindow *policy.CancellationWindow `json:"applicable_window,omitempty"`
}
