package products

// ListProductsResponse wraps a catalog page with pagination metadata
type ListProductsResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
