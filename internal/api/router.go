package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Sepzie/SonicUX/internal/api/handlers"
	apimiddleware "github.com/Sepzie/SonicUX/internal/api/middleware"
	"github.com/Sepzie/SonicUX/internal/config"
	"github.com/Sepzie/SonicUX/internal/metrics"
	"github.com/Sepzie/SonicUX/internal/session"
)

func SetupRouter(manager *session.Manager, cfg *config.Config, cw *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(manager, version)
	router.GET("/health", healthHandler.Check)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, manager)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Session API v1. Auth is either delegated to an upstream gateway or
	// disabled entirely for self-hosted deployments.
	v1 := router.Group("/api/v1")
	if cfg.IsGatewayMode() {
		v1.Use(apimiddleware.GatewayAuth())
	} else {
		v1.Use(apimiddleware.NoAuth())
	}
	{
		sessionHandler := handlers.NewSessionHandler(manager, cfg, cw)
		frameHandler := handlers.NewFrameHandler(manager, cw)
		eventHandler := handlers.NewEventHandler(manager)
		controlHandler := handlers.NewControlHandler(manager)
		streamHandler := handlers.NewStreamHandler(manager, cw)

		sessions := v1.Group("/sessions")

		// Lifecycle
		sessions.POST("", sessionHandler.CreateSession)
		sessions.GET("/:id", sessionHandler.GetSession)
		sessions.DELETE("/:id", sessionHandler.DeleteSession)

		// Realtime input. The WebSocket stream is the intended transport
		// for per-display-frame updates; the POST endpoints suit lower
		// rates and simpler clients.
		sessions.POST("/:id/frame", frameHandler.UpdateFrame)
		sessions.POST("/:id/event", eventHandler.PostEvent)
		sessions.GET("/:id/stream", streamHandler.Stream)

		// Controls
		sessions.PUT("/:id/preset", controlHandler.SetPreset)
		sessions.PUT("/:id/scale", controlHandler.SetScale)
		sessions.PUT("/:id/chord-pool", controlHandler.SetChordPool)
		sessions.PUT("/:id/modulation-rate", controlHandler.SetModulationRate)
		sessions.PUT("/:id/enabled", controlHandler.SetEnabled)
		sessions.PUT("/:id/diagnostics", controlHandler.SetDiagnostics)
		sessions.PUT("/:id/section", controlHandler.SetSection)
	}

	return router
}
