// Package httpapi is the engine's inbound HTTP surface: one query endpoint
// and a health check.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockpilot/stockpilot/internal/config"
	"github.com/stockpilot/stockpilot/internal/httpapi/handlers"
	"github.com/stockpilot/stockpilot/internal/httpapi/middleware"
	"github.com/stockpilot/stockpilot/internal/platform/logger"
)

type RouterConfig struct {
	HealthHandler *handlers.HealthHandler
	QueryHandler  *handlers.QueryHandler

	// MaxRequestBytes caps inbound request bodies. Zero leaves them
	// unbounded.
	MaxRequestBytes int64
}

func NewRouter(cfg RouterConfig, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())
	if cfg.MaxRequestBytes > 0 {
		r.Use(middleware.MaxRequestBytes(cfg.MaxRequestBytes))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	v1 := r.Group("/v1")
	{
		if cfg.QueryHandler != nil {
			v1.POST("/query", cfg.QueryHandler.Resolve)
		}
	}

	return r
}

// NewServer wraps the router in an http.Server with the configured timeouts
// so the app can shut it down gracefully.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
	}
}
