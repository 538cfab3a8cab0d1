package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eduable", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "status"})
	HTTPDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "eduable", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	})
	SessionsEstablished = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "eduable", Name: "sessions_established_total", Help: "Sessions established since start",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, SessionsEstablished)
}

func Handler() http.Handler { return promhttp.Handler() }

// Middleware records per-request counters and latency.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		HTTPRequests.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.Observe(time.Since(start).Seconds())
	}
}
