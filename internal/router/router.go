package router

import (
	"github.com/gin-gonic/gin"

	"lesenhub/internal/config"
	"lesenhub/internal/handler"
	"lesenhub/internal/middleware"
	"lesenhub/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	appH *handler.ApplicationHandler,
	docH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Application lifecycle. The whole surface sits behind a deployment
	// feature gate.
	apps := protected.Group("/permohonan")
	apps.Use(middleware.RequireFeature(cfg.Features.ApplicationsEnabled))
	apps.POST("", appH.Create)
	apps.GET("", appH.List)
	apps.GET("/:id", appH.Show)
	apps.PUT("/:id", appH.Update)
	apps.POST("/:id/submit", appH.Submit)
	apps.POST("/:id/cancel", appH.Cancel)

	// Requirement documents, nested under their application
	apps.POST("/:id/dokumen", docH.Upload)
	apps.DELETE("/:id/dokumen/:documentId", docH.Delete)
	apps.GET("/:id/dokumen/:documentId/url", docH.DownloadURL)

	return r
}
