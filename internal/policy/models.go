package policy

import (
	"time"

	"github.com/google/uuid"
)

// Provider identifies which third-party supplier a product was sourced from.
// It is a label on the product record; it selects which override rule set
// applies during evaluation. New providers fall through to plain window
// matching unless an override is registered for them.
type Provider string

const (
	ProviderDragonpass Provider = "dragonpass"
	ProviderMozio      Provider = "mozio"
	ProviderAiralo     Provider = "airalo"
)

// ProductType classifies the purchased travel product.
type ProductType string

const (
	ProductTypeLoungeAccess    ProductType = "lounge_access"
	ProductTypeAirportTransfer ProductType = "airport_transfer"
	ProductTypeESIM            ProductType = "esim"
)

// AccessType distinguishes single-entry lounge passes from multi-entry ones.
type AccessType string

const (
	AccessTypeSingleUse AccessType = "single_use"
	AccessTypeMultiUse  AccessType = "multi_use"
)

// CancelCondition is a policy-declared restriction checked in addition to any
// provider-specific override.
type CancelCondition string

const (
	// CancelOnlyIfNotActivated rejects cancellation once the product has been
	// activated, regardless of provider.
	CancelOnlyIfNotActivated CancelCondition = "only_if_not_activated"
)

// Money is an amount in a single currency. The currency code is carried
// through unchanged; the engine never converts between currencies.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CancellationWindow grants RefundPercentage of the price when the product is
// cancelled with at least HoursBeforeService hours of lead time.
type CancellationWindow struct {
	HoursBeforeService float64 `json:"hours_before_service"`
	RefundPercentage   float64 `json:"refund_percentage"`
	Description        string  `json:"description"`
}

// CancellationPolicy is the refund schedule embedded in a product. Windows are
// an unordered set; they are normalized at evaluation time and need not be
// pre-sorted or non-overlapping in storage.
type CancellationPolicy struct {
	Windows         []CancellationWindow `json:"windows"`
	CanCancel       bool                 `json:"can_cancel"`
	CancelCondition CancelCondition      `json:"cancel_condition,omitempty"`
}

// Metadata is the provider-specific state bag attached to a product.
type Metadata struct {
	IsActivated bool       `json:"is_activated,omitempty"`
	AccessType  AccessType `json:"access_type,omitempty"`
}

// Product is the unit being evaluated. It is immutable for the duration of an
// evaluation; the engine only reads it.
type Product struct {
	ID                 uuid.UUID          `json:"id"`
	Provider           Provider           `json:"provider"`
	Type               ProductType        `json:"type"`
	Price              Money              `json:"price"`
	CancellationPolicy CancellationPolicy `json:"cancellation_policy"`
	ServiceDateTime    time.Time          `json:"service_datetime"`
	ActivationDeadline *time.Time         `json:"activation_deadline,omitempty"`
	Metadata           Metadata           `json:"metadata"`
}

// RefundDecision is the outcome of evaluating a cancellation. When a window
// matched, RefundAmount+CancellationFee equals the product price; both amounts
// are in the product's currency. It is an ephemeral derived value; persisting
// an audit record is the caller's concern.
type RefundDecision struct {
	RefundAmount    float64             `json:"refund_amount"`
	CancellationFee float64             `json:"cancellation_fee"`
	PolicyName      string              `json:"refund_policy"`
	Message         string              `json:"message"`
	MatchedWindow   *CancellationWindow `json:"applicable_window,omitempty"`
}

// IsRefundable reports whether the decision grants any refund at all.
func (d RefundDecision) IsRefundable() bool {
	return d.RefundAmount > 0
}
