package cancellations

import (
	"time"

	"refundly/internal/policy"

	"github.com/google/uuid"
)

// Cancellation is the audit record for every evaluated cancellation request.
// Policy rejections are stored too: a no-refund outcome is a decision, not an
// error, and support needs to see what the engine answered.
type Cancellation struct {
	ID              uuid.UUID                  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProductID       uuid.UUID                  `gorm:"type:uuid;not null;index" json:"product_id"`
	BookingRef      string                     `gorm:"type:varchar(40);not null;index" json:"booking_ref"`
	Provider        string                     `gorm:"type:varchar(30);not null" json:"provider"`
	RefundAmount    float64                    `gorm:"default:0" json:"refund_amount"`
	CancellationFee float64                    `gorm:"default:0" json:"cancellation_fee"`
	RefundPolicy    string                     `gorm:"type:varchar(60);not null" json:"refund_policy"`
	Message         string                     `json:"message"`
	MatchedWindow   *policy.CancellationWindow `gorm:"serializer:json" json:"applicable_window,omitempty"`
	Status          string                     `gorm:"type:varchar(20);check:status IN ('PROCESSED', 'REJECTED');default:'PROCESSED'" json:"status"`
	Reason          string                     `json:"reason"`
	RequestedAt     time.Time                  `json:"requested_at"`
	ProcessedAt     *time.Time                 `json:"processed_at,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// TableName sets the table name for Cancellation
func (Cancellation) TableName() string {
	return "cancellations"
}
