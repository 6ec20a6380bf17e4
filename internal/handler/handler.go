package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/chat-endpoints/internal/endpoints"
	"github.com/maxviazov/chat-endpoints/internal/proxy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register mounts health probes, the route catalog and, when px is non-nil, the dev proxy.
func Register(r *gin.Engine, table *endpoints.Table, px *proxy.Proxy) {
	var pinger Pinger = alwaysReady{}
	if px != nil {
		pinger = px
	}
	h := NewHealthHandler(pinger)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	NewCatalogHandler(table).Register(r.Group(CatalogPrefix))

	if px != nil {
		forward := gin.WrapH(px)
		r.Any(px.Prefix(), forward)
		r.Any(px.Prefix()+"/*path", forward)
	}
}

// RegisterMetrics exposes g in the prometheus text format at /metrics.
func RegisterMetrics(r *gin.Engine, g prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}
