package router

import (
	"github.com/gin-gonic/gin"

	"lading/internal/config"
	"lading/internal/handler"
	"lading/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	parseH *handler.ParseHandler,
	recordH *handler.RecordHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(&cfg.CORS))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(&cfg.JWT))

	// Parsing routes
	parse := protected.Group("/parse")
	parse.POST("", parseH.Parse)
	parse.POST("/multi", parseH.ParseMulti)
	parse.POST("/batch", parseH.ParseBatch)

	// Record routes
	records := protected.Group("/records")
	records.GET("", recordH.List)
	records.GET("/export", recordH.Export)
	records.GET("/:id", recordH.Get)
	records.DELETE("/:id", recordH.Delete)

	// Document-scoped routes
	documents := protected.Group("/documents")
	documents.GET("/:id/records", recordH.ListByDocument)
	documents.GET("/:id/preview", recordH.Preview)

	return r
}
