package products

// WindowRequest is one refund tier of a cancellation policy
type WindowRequest struct {
	HoursBeforeService float64 `json:"hours_before_service" binding:"min=0"`
	RefundPercentage   float64 `json:"refund_percentage" binding:"min=0,max=100"`
	Description        string  `json:"description" binding:"omitempty,max=200"`
}

// CreateProductRequest is the admin payload for registering a purchased product
type CreateProductRequest struct {
	BookingRef         string          `json:"booking_ref" binding:"required,min=4,max=40"`
	Provider           string          `json:"provider" binding:"required,oneof=dragonpass mozio airalo"`
	Type               string          `json:"type" binding:"required,oneof=lounge_access airport_transfer esim"`
	Name               string          `json:"name" binding:"omitempty,max=120"`
	PriceAmount        float64         `json:"price_amount" binding:"min=0"`
	PriceCurrency      string          `json:"price_currency" binding:"required,currency"`
	ServiceDateTime    string          `json:"service_datetime" binding:"required"`
	ActivationDeadline string          `json:"activation_deadline" binding:"omitempty"`
	Windows            []WindowRequest `json:"windows" binding:"omitempty,dive"`
	CanCancel          bool            `json:"can_cancel"`
	CancelCondition    string          `json:"cancel_condition" binding:"omitempty,oneof=only_if_not_activated"`
	IsActivated        bool            `json:"is_activated"`
	AccessType         string          `json:"access_type" binding:"omitempty,oneof=single_use multi_use"`
}

// ListProductsQuery holds pagination parameters for catalog listing
type ListProductsQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}
