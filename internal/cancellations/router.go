package cancellations

import (
	"github.com/gin-gonic/gin"
)

func SetupCancellationRoutes(router *gin.RouterGroup, controller *Controller) {
	cancellations := router.Group("/cancellations")
	{
		cancellations.POST("", controller.RequestCancellation)                       // POST /api/v1/cancellations - Evaluate and record a cancellation
		cancellations.POST("/quote", controller.QuoteRefund)                         // POST /api/v1/cancellations/quote - Non-binding refund preview
		cancellations.GET("/:id", controller.GetCancellation)                        // GET /api/v1/cancellations/:id - Cancellation details
		cancellations.GET("/booking/:ref", controller.GetCancellationsByBookingRef)  // GET /api/v1/cancellations/booking/:ref - History for a booking
	}
}
