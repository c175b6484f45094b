// Package metrics exposes prometheus instrumentation for the catalog service
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

var (
	// CatalogLoads counts successful full catalog loads
	CatalogLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_loads_total",
		Help: "Number of successful catalog snapshot loads.",
	})

	// CatalogOps counts catalog mutations by operation and outcome
	CatalogOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_operations_total",
		Help: "Catalog mutations by operation and outcome.",
	}, []string{"op", "status"})
)

// Handler returns the /metrics endpoint as a gin handler
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
