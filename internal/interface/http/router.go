package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/doc-summarizer/internal/infra/config"
	"github.com/yanqian/doc-summarizer/internal/infra/telemetry"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *SummaryHandler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	// Status-reading middlewares must sit outside errorHandlingMiddleware.
	middlewares := []gin.HandlerFunc{
		gin.Recovery(),
		requestIDMiddleware(),
	}
	if cfg.Metrics.Enabled {
		middlewares = append(middlewares, telemetry.Middleware())
	}
	middlewares = append(middlewares,
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
	)
	router.Use(middlewares...)

	router.GET("/", handler.Root)
	router.GET("/healthz", handler.Healthz)
	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(telemetry.Handler()))
	}

	router.POST("/api/summarize", handler.Summarize)
	api := router.Group("/api/v1")
	{
		api.POST("/summaries", handler.Summarize)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetString(requestIDKey),
			"latency_ms", latency.Milliseconds())
	}
}
