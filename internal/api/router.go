package api

import (
	"github.com/commtrans/ct-backend-go/internal/api/handlers"
	"github.com/commtrans/ct-backend-go/internal/api/middleware"
	"github.com/commtrans/ct-backend-go/internal/config"
	"github.com/commtrans/ct-backend-go/internal/core/metrics"
	"github.com/commtrans/ct-backend-go/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter creates and configures the main HTTP router
func NewRouter(cfg *config.Config, h *handlers.Handlers, collector *metrics.Collector, wsHub *websocket.Hub, logger *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware(collector))

	// Public routes
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", websocket.Handler(wsHub))

	api := router.Group("/api/v1")
	{
		// Public: catalog discovery and exports
		api.GET("/locales", h.ListLocales)
		api.GET("/locales/:id/translations.po", h.ExportPo)
		api.GET("/locales/:id/translations.po.gz", h.ExportPoGz)

		// Protected: anything that writes
		protected := api.Group("/")
		if cfg.Auth.Enabled {
			protected.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		}
		{
			protected.POST("/locales/:id/translations", h.ImportTranslations)
			protected.POST("/packages/:handle/:version/translatables", h.ImportPackageTranslatables)
		}
	}

	return router
}
