package products

import (
	"net/http"

	"refundly/internal/shared/utils/response"
	"refundly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller handles HTTP requests for the product catalog
type Controller struct {
	service Service
	log     *logger.Logger
}

// NewController creates a new product controller instance
func NewController(service Service, log *logger.Logger) *Controller {
	return &Controller{
		service: service,
		log:     log,
	}
}

// CreateProduct handles POST /admin/products
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	product, err := ctrl.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		ctrl.log.ErrorWithContext(c.Request.Context(), "Failed to create product", err, nil)
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Failed to create product", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Product created successfully", product, nil)
}

// GetProduct handles GET /products/:id
func (ctrl *Controller) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid product ID", nil, err.Error())
		return
	}

	product, err := ctrl.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusNotFound, "Product not found", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Product retrieved successfully", product, nil)
}

// GetProductByBookingRef handles GET /products/booking/:ref
func (ctrl *Controller) GetProductByBookingRef(c *gin.Context) {
	bookingRef := c.Param("ref")
	if bookingRef == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	product, err := ctrl.service.GetProductByBookingRef(c.Request.Context(), bookingRef)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusNotFound, "Product not found", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Product retrieved successfully", product, nil)
}

// ListProducts handles GET /products
func (ctrl *Controller) ListProducts(c *gin.Context) {
	var query ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	products, total, err := ctrl.service.ListProducts(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		ctrl.log.ErrorWithContext(c.Request.Context(), "Failed to list products", err, nil)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list products", nil, err.Error())
		return
	}

	resp := ListProductsResponse{
		Products: products,
		Total:    total,
		Page:     query.Page,
		Limit:    query.Limit,
	}
	response.RespondJSON(c, "success", http.StatusOK, "Products retrieved successfully", resp, nil)
}

// MarkActivated handles PATCH /admin/products/:id/activate
func (ctrl *Controller) MarkActivated(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid product ID", nil, err.Error())
		return
	}

	product, err := ctrl.service.MarkActivated(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, "Failed to mark product activated", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Product marked as activated", product, nil)
}
