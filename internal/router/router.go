// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopfloor/inventory-backend/internal/config"
	"github.com/shopfloor/inventory-backend/internal/handlers"
	"github.com/shopfloor/inventory-backend/internal/middleware"
	"github.com/shopfloor/inventory-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	productService := services.NewProductService(db)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.CreateProduct)
			products.POST("/bulk", productHandler.BulkUpsertProducts)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.GET("/expiring", productHandler.GetExpiringProducts)

			report := products.Group("/report")
			{
				report.GET("/value", productHandler.GetValueReport)
				report.GET("/category/:category", productHandler.GetCategoryReport)
			}
		}
	}

	return r
}
