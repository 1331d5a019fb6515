package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parcelio/shipping-api/internal/adapter/http/middleware"
	"github.com/parcelio/shipping-api/internal/logging"
)

func NewRouter(h *ShippingHandler, ch *CountryHandler, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(log))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Info("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/shipping/quote", h.Quote)
		v1.GET("/countries", ch.ListActive)
		v1.GET("/countries/:code", ch.GetByCode)
	}

	return r
}
