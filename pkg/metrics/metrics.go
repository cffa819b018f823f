package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	OrdersCreated   prometheus.Counter
	VouchersApplied prometheus.Counter
}

func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"path", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marketplace",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"path"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: service,
		Name:      "orders_created_total",
		Help:      "Orders successfully created.",
	})
	vouchersApplied := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: service,
		Name:      "vouchers_applied_total",
		Help:      "Orders created with a voucher discount applied.",
	})

	prometheus.MustRegister(requests, latency, ordersCreated, vouchersApplied)
	return &ServerMetrics{
		Requests:        requests,
		LatencyMS:       latency,
		OrdersCreated:   ordersCreated,
		VouchersApplied: vouchersApplied,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
