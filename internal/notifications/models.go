package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lifecycle event types emitted while a cancellation request is processed
type EventType string

const (
	EventTypeCancellationStarted   EventType = "CANCELLATION_STARTED"
	EventTypeCancellationCompleted EventType = "CANCELLATION_COMPLETED"
	EventTypeCancellationFailed    EventType = "CANCELLATION_FAILED"
)

type EventStatus string

const (
	EventStatusPending EventStatus = "PENDING"
	EventStatusQueued  EventStatus = "QUEUED"
	EventStatusFailed  EventStatus = "FAILED"
)

// CancellationEvent is the message published to Kafka for every stage of a
// cancellation request. Consumers (email, provider webhooks) are out of
// process and read the same payload.
type CancellationEvent struct {
	ID   uuid.UUID `json:"id"`
	Type EventType `json:"type"`

	// Request context
	CancellationID *uuid.UUID `json:"cancellation_id,omitempty"`
	ProductID      uuid.UUID  `json:"product_id"`
	BookingRef     string     `json:"booking_ref"`
	Provider       string     `json:"provider"`

	// Decision outcome, present on COMPLETED events
	RefundAmount    *float64 `json:"refund_amount,omitempty"`
	CancellationFee *float64 `json:"cancellation_fee,omitempty"`
	RefundPolicy    string   `json:"refund_policy,omitempty"`
	Message         string   `json:"message,omitempty"`

	// Failure detail, present on FAILED events
	FailureReason string `json:"failure_reason,omitempty"`

	// Status tracking
	Status    EventStatus `json:"status"`
	LastError *string     `json:"last_error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Builder for cancellation events
type EventBuilder struct {
	event *CancellationEvent
}

func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		event: &CancellationEvent{
			ID:        uuid.New(),
			Status:    EventStatusPending,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

func (eb *EventBuilder) WithType(eventType EventType) *EventBuilder {
	eb.event.Type = eventType
	return eb
}

func (eb *EventBuilder) WithProduct(productID uuid.UUID, bookingRef, provider string) *EventBuilder {
	eb.event.ProductID = productID
	eb.event.BookingRef = bookingRef
	eb.event.Provider = provider
	return eb
}

func (eb *EventBuilder) WithCancellation(cancellationID uuid.UUID) *EventBuilder {
	eb.event.CancellationID = &cancellationID
	return eb
}

func (eb *EventBuilder) WithDecision(refundAmount, cancellationFee float64, refundPolicy, message string) *EventBuilder {
	eb.event.RefundAmount = &refundAmount
	eb.event.CancellationFee = &cancellationFee
	eb.event.RefundPolicy = refundPolicy
	eb.event.Message = message
	return eb
}

func (eb *EventBuilder) WithFailure(reason string) *EventBuilder {
	eb.event.FailureReason = reason
	return eb
}

func (eb *EventBuilder) Build() *CancellationEvent {
	return eb.event
}

// GetPartitionKey keeps all events for one booking on the same partition so
// consumers see STARTED before COMPLETED/FAILED.
func (ce *CancellationEvent) GetPartitionKey() string {
	return ce.BookingRef
}

func (ce *CancellationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(ce)
}

func (ce *CancellationEvent) MarkFailed(err error) {
	now := time.Now()
	ce.Status = EventStatusFailed
	ce.UpdatedAt = now

	errorStr := err.Error()
	ce.LastError = &errorStr
}
