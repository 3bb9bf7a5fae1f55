package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	ServiceName string
	Registry    *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	authAttempts   *prometheus.CounterVec
	cartOperations *prometheus.CounterVec
	orders         *prometheus.CounterVec
	revenue        prometheus.Counter
}

func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		ServiceName: serviceName,
		Registry:    reg,

		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		authAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "auth_attempts_total",
			Help:        "Sign-up and sign-in attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"kind", "outcome"}),

		cartOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "cart_operations_total",
			Help:        "Cart mutations by operation and outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),

		orders: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "orders_total",
			Help:        "Checkout attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		revenue: f.NewCounter(prometheus.CounterOpts{
			Name:        "order_revenue_total",
			Help:        "Sum of completed order totals",
			ConstLabels: constLabels,
		}),
	}
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			m.requests.WithLabelValues(method, path, statusStr).Inc()
			m.duration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Recorders below are nil-safe.

func (m *Metrics) AuthAttempt(kind string, err error) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(kind, outcome(err)).Inc()
}

func (m *Metrics) CartOperation(op string, err error) {
	if m == nil {
		return
	}
	m.cartOperations.WithLabelValues(op, outcome(err)).Inc()
}

func (m *Metrics) Order(total float64, err error) {
	if m == nil {
		return
	}
	m.orders.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		m.revenue.Add(total)
	}
}
