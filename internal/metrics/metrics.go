package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Outcome label values for the domain counters.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dmeter",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dmeter",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dmeter",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Domain metrics
	SatelliteAnalyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dmeter",
		Subsystem: "satellite",
		Name:      "analyses_total",
		Help:      "Total satellite analyses run, by analyzer and outcome",
	}, []string{"analyzer", "outcome"})

	EnvironmentalLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dmeter",
		Subsystem: "environmental",
		Name:      "lookups_total",
		Help:      "Total environmental data lookups, by provider and outcome",
	}, []string{"provider", "outcome"})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dmeter",
		Subsystem: "http",
		Name:      "validation_failures_total",
		Help:      "Requests rejected by schema validation",
	}, []string{"path"})
)

// Middleware records request metrics. It must run outside the middleware
// that resolves handler errors into responses, otherwise failed requests are
// recorded with the status the handler left behind.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// Route patterns keep label cardinality bounded (/api/environmental/:lat/:lng).
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus exposition format.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
