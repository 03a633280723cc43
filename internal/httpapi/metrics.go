package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitch",
		Name:      "http_requests_total",
		Help:      "HTTP requests by handler and status code",
	}, []string{"handler", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitch",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by handler",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"handler"})

	ruleApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitch",
		Name:      "rule_applications_total",
		Help:      "Derivation rule attempts by rule and outcome",
	}, []string{"rule", "outcome"})

	proofsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitch",
		Name:      "proofs_completed_total",
		Help:      "Proofs that reached their goal",
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitch",
		Name:      "active_sessions",
		Help:      "Live proof sessions",
	})
)

const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
)

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(handler).Observe(time.Since(start).Seconds())
	}
}
