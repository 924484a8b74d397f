// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quizbit",
		Name:      "http_requests_total",
		Help:      "HTTP requests by path, method and status code.",
	}, []string{"path", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quizbit",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by path and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "method"})

	resultsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "quizbit",
		Name:      "results_created_total",
		Help:      "Quiz results persisted.",
	})
)

// RecordResultCreated counts one durable result write.
func RecordResultCreated() {
	resultsCreated.Inc()
}

// Middleware records request count and latency for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the /metrics scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
