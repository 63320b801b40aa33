package cancellations

// CancelRequest is the payload for requesting a cancellation. At least one of
// product_id or booking_id must be set; product_id wins when both are present.
type CancelRequest struct {
	ProductID   string `json:"product_id" binding:"omitempty,uuid"`
	BookingID   string `json:"booking_id" binding:"omitempty,min=4,max=40"`
	BookingTime string `json:"booking_time" binding:"omitempty"`
	LoungeID    string `json:"lounge_id" binding:"omitempty,max=60"`
	Reason      string `json:"reason" binding:"omitempty,max=500"`
}
