package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ErlanBelekov/jobs-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Route labels for requests that never matched a registered route. Scanners
// hitting random paths would otherwise explode label cardinality.
const (
	routeUnmatched = "unmatched"
	routePreflight = "preflight"
)

// Metrics records latency and count per route template, e.g.
// "/api/v1/jobs/:id", so job ids never become label values.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		method := c.Request.Method
		route := routeLabel(c)
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	}
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	// CORS preflights have no OPTIONS route and are answered by the CORS middleware.
	if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
		return routePreflight
	}
	return routeUnmatched
}
