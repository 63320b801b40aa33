package cancellations

import (
	"errors"
	"net/http"
	"strings"

	"refundly/internal/shared/utils/response"
	"refundly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller handles HTTP requests for cancellations
type Controller struct {
	service Service
	log     *logger.Logger
}

// NewController creates a new cancellation controller instance
func NewController(service Service, log *logger.Logger) *Controller {
	return &Controller{
		service: service,
		log:     log,
	}
}

// RequestCancellation handles POST /cancellations
func (ctrl *Controller) RequestCancellation(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	result, err := ctrl.service.RequestCancellation(c.Request.Context(), req)
	if err != nil {
		ctrl.respondError(c, err, "Failed to process cancellation")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellation processed", result, nil)
}

// QuoteRefund handles POST /cancellations/quote
func (ctrl *Controller) QuoteRefund(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	quote, err := ctrl.service.QuoteRefund(c.Request.Context(), req)
	if err != nil {
		ctrl.respondError(c, err, "Failed to quote refund")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Refund quote computed", quote, nil)
}

// GetCancellation handles GET /cancellations/:id
func (ctrl *Controller) GetCancellation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid cancellation ID", nil, err.Error())
		return
	}

	record, err := ctrl.service.GetCancellation(c.Request.Context(), id)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusNotFound, "Cancellation not found", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellation retrieved successfully", record, nil)
}

// GetCancellationsByBookingRef handles GET /cancellations/booking/:ref
func (ctrl *Controller) GetCancellationsByBookingRef(c *gin.Context) {
	bookingRef := c.Param("ref")
	if bookingRef == "" {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Booking reference is required", nil, nil)
		return
	}

	records, err := ctrl.service.GetCancellationsByBookingRef(c.Request.Context(), bookingRef)
	if err != nil {
		ctrl.log.ErrorWithContext(c.Request.Context(), "Failed to list cancellations", err, nil)
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list cancellations", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellations retrieved successfully", records, nil)
}

// respondError maps service errors to HTTP statuses. Request validation
// failures are 400s, unresolvable products are 404s, a duplicate refund is a
// 409, anything else is a 500.
func (ctrl *Controller) respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNoIdentifier),
		errors.Is(err, ErrInvalidBookingTime),
		errors.Is(err, ErrLoungeIDRequired):
		response.RespondJSON(c, "error", http.StatusBadRequest, msg, nil, err.Error())
	case errors.Is(err, ErrAlreadyRefunded):
		response.RespondJSON(c, "error", http.StatusConflict, msg, nil, err.Error())
	case isNotFound(err):
		response.RespondJSON(c, "error", http.StatusNotFound, msg, nil, err.Error())
	default:
		ctrl.log.ErrorWithContext(c.Request.Context(), msg, err, nil)
		response.RespondJSON(c, "error", http.StatusInternalServerError, msg, nil, err.Error())
	}
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
