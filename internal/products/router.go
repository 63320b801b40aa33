package products

import (
	"refundly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupProductRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - anyone can browse the catalog
	publicProducts := router.Group("/products")
	{
		publicProducts.GET("", controller.ListProducts)                      // GET /api/v1/products - Browse catalog
		publicProducts.GET("/:id", controller.GetProduct)                    // GET /api/v1/products/:id - Product details
		publicProducts.GET("/booking/:ref", controller.GetProductByBookingRef) // GET /api/v1/products/booking/:ref - Lookup by booking reference
	}

	// Admin routes - only admins manage the catalog
	adminProducts := router.Group("/admin/products")
	adminProducts.Use(middleware.JWTAuth(), middleware.RequireRoles("ADMIN"))
	{
		adminProducts.POST("", controller.CreateProduct)                 // POST /api/v1/admin/products - Register product
		adminProducts.PATCH("/:id/activate", controller.MarkActivated)   // PATCH /api/v1/admin/products/:id/activate - Record activation
	}
}
