package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentiment_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"path", "status"})

	inferenceSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentiment_inference_seconds",
		Help:    "Latency of upstream classify calls made for /predict.",
		Buckets: prometheus.DefBuckets,
	})
)

// Metrics counts finished requests per route and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func observeInference(d time.Duration) {
	inferenceSeconds.Observe(d.Seconds())
}
