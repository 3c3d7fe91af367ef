package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик HTTP слоя сервиса
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CacheHits       *prometheus.CounterVec
}

// New регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "tenant_config_cache_requests_total",
			Help:        "Tenant config cache lookups by outcome (hit/miss)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
}

// ObserveCacheLookup фиксирует результат обращения к кэшу конфигураций
func (m *Metrics) ObserveCacheLookup(outcome string) {
	m.CacheHits.WithLabelValues(outcome).Inc()
}

// ObserveRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(seconds)
}
