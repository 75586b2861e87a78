// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/svebrant/product-api-assignment/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request count, latency and in-flight requests per route
// template. Routes listed in skip (by default only /metrics) are not recorded.
func Metrics(skip ...string) gin.HandlerFunc {
	if len(skip) == 0 {
		skip = []string{"/metrics"}
	}
	skipped := make(map[string]struct{}, len(skip))
	for _, route := range skip {
		skipped[route] = struct{}{}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if _, ok := skipped[route]; ok {
			c.Next()
			return
		}
		if route == "" {
			route = unmatchedRoute
		}

		inFlight := metrics.HTTPRequestsInFlight
		inFlight.Inc()
		timer := metrics.NewTimer()
		defer inFlight.Dec()

		c.Next()

		method := c.Request.Method
		timer.ObserveDuration(metrics.HTTPRequestDuration.WithLabelValues(method, route))
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
