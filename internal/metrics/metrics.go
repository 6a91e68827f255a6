package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const subsystem = "clickpay"

// HistogramBuckets are latency buckets in milliseconds.
var HistogramBuckets = []float64{
	5, 10, 25, 50, 75, 100, 150, 200, 300, 400, 500,
	750, 1000, 1500, 2000, 3000, 5000, 10000,
}

// Metrics holds the collectors exported by the service.
type Metrics struct {
	reqCnt     *prometheus.CounterVec
	reqDur     *prometheus.HistogramVec
	webhookCnt *prometheus.CounterVec
	webhookDur *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "req_total",
			Help:      "How many HTTP requests processed, partitioned by status code, method and route.",
		}, []string{"code", "method", "url"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "req_dur_ms",
			Help:      "The HTTP request latencies in milliseconds.",
			Buckets:   HistogramBuckets,
		}, []string{"code", "method", "url"}),
		webhookCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "click_webhook_requests_total",
			Help:      "Click webhook calls by action and Click error code.",
		}, []string{"action", "error"}),
		webhookDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "click_webhook_duration_ms",
			Help:      "Click webhook processing time in milliseconds.",
			Buckets:   HistogramBuckets,
		}, []string{"action"}),
	}
	reg.MustRegister(m.reqCnt, m.reqDur, m.webhookCnt, m.webhookDur)
	return m
}

// ObserveWebhook records the outcome of a Click webhook call.
func (m *Metrics) ObserveWebhook(action string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.webhookCnt.WithLabelValues(action, strconv.Itoa(code)).Inc()
	m.webhookDur.WithLabelValues(action).Observe(Milliseconds(elapsed))
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		url := c.Route().Path
		code := strconv.Itoa(status)
		m.reqCnt.WithLabelValues(code, c.Method(), url).Inc()
		m.reqDur.WithLabelValues(code, c.Method(), url).Observe(Milliseconds(time.Since(start)))
		return err
	}
}

// Handler exposes the collectors gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
