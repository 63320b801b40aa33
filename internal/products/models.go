package products

import (
	"time"

	"refundly/internal/policy"

	"github.com/google/uuid"
)

// Product is the catalog record for a purchased travel product. The embedded
// cancellation policy and provider metadata are stored as JSONB; they are
// opaque to the database and only interpreted by the policy engine.
type Product struct {
	ID                 uuid.UUID                 `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingRef         string                    `gorm:"type:varchar(40);uniqueIndex;not null" json:"booking_ref"`
	Provider           string                    `gorm:"type:varchar(30);not null;index" json:"provider"`
	Type               string                    `gorm:"type:varchar(30);not null" json:"type"`
	Name               string                    `gorm:"type:varchar(120)" json:"name"`
	PriceAmount        float64                   `gorm:"not null;check:price_amount >= 0" json:"price_amount"`
	PriceCurrency      string                    `gorm:"type:varchar(3);not null" json:"price_currency"`
	ServiceDateTime    time.Time                 `gorm:"not null;index" json:"service_datetime"`
	ActivationDeadline *time.Time                `json:"activation_deadline,omitempty"`
	CancellationPolicy policy.CancellationPolicy `gorm:"serializer:json" json:"cancellation_policy"`
	Metadata           policy.Metadata           `gorm:"serializer:json" json:"metadata"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

// TableName sets the table name for Product
func (Product) TableName() string {
	return "products"
}

// ToPolicyProduct converts the catalog record into the pure product value the
// policy engine evaluates.
func (p *Product) ToPolicyProduct() policy.Product {
	return policy.Product{
		ID:       p.ID,
		Provider: policy.Provider(p.Provider),
		Type:     policy.ProductType(p.Type),
		Price: policy.Money{
			Amount:   p.PriceAmount,
			Currency: p.PriceCurrency,
		},
		CancellationPolicy: p.CancellationPolicy,
		ServiceDateTime:    p.ServiceDateTime,
		ActivationDeadline: p.ActivationDeadline,
		Metadata:           p.Metadata,
	}
}
