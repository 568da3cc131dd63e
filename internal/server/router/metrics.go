package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const namespace = "stoickegs"

// FleetStats reports the current keg counts.
type FleetStats interface {
	KegStats() models.KegStats
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, fleet FleetStats) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP responses with a 4xx or 5xx status",
		}, []string{"method", "path", "category"}),
	}
	reg.MustRegister(m.requests, m.duration, m.errors)

	if fleet != nil {
		for _, status := range models.KegStatuses {
			status := status
			reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace:   namespace,
				Name:        "kegs",
				Help:        "Number of kegs per lifecycle status",
				ConstLabels: prometheus.Labels{"status": string(status)},
			}, func() float64 {
				return float64(fleet.KegStats().Count(status))
			}))
		}
	}
	return m
}

func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := c.Writer.Status()
		status := strconv.Itoa(code)

		m.requests.WithLabelValues(c.Request.Method, path, status).Inc()
		m.duration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		switch {
		case code >= 500:
			m.errors.WithLabelValues(c.Request.Method, path, "server").Inc()
		case code >= 400:
			m.errors.WithLabelValues(c.Request.Method, path, "client").Inc()
		}
	}
}
