package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service collectors. A private registry keeps tests free of
	// duplicate registration panics.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "agency",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	HttpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agency",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	HttpRateLimitRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "http",
			Name:      "rate_limit_rejections_total",
			Help:      "Total number of HTTP requests rejected by the rate limiter.",
		},
	)

	DocumentsGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "documents",
			Name:      "generated_total",
			Help:      "Documents rendered from templates.",
		},
		[]string{"template", "format"},
	)

	DocumentValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "documents",
			Name:      "validation_failures_total",
			Help:      "Form submissions rejected for missing required fields.",
		},
		[]string{"template"},
	)

	CommunicationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "communications",
			Name:      "logged_total",
			Help:      "Communications recorded, by channel and initial status.",
		},
		[]string{"type", "status"},
	)

	ScheduledDispatchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "scheduler",
			Name:      "communications_dispatched_total",
			Help:      "Scheduled communications marked sent by the dispatcher.",
		},
	)

	PaymentsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "scheduler",
			Name:      "payments_expired_total",
			Help:      "Payment requests moved to expired by the dispatcher.",
		},
	)

	SchedulerRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "scheduler",
			Name:      "runs_total",
			Help:      "Dispatcher runs by outcome.",
		},
		[]string{"job", "success"},
	)

	WebsocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "agency",
			Subsystem: "websocket",
			Name:      "clients",
			Help:      "Connected websocket clients.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		HttpRequestsTotal,
		HttpRequestDuration,
		HttpRateLimitRejectionsTotal,
		DocumentsGeneratedTotal,
		DocumentValidationFailuresTotal,
		CommunicationsTotal,
		ScheduledDispatchedTotal,
		PaymentsExpiredTotal,
		SchedulerRunsTotal,
		WebsocketClients,
	)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware records request count and latency labelled by the matched route pattern,
// so ids in paths do not explode label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		path := c.Route().Path
		method := c.Method()
		HttpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		HttpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

func RecordSchedulerRun(job string, err error) {
	SchedulerRunsTotal.WithLabelValues(job, strconv.FormatBool(err == nil)).Inc()
}
