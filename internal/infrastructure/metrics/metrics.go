// Package metrics expone los colectores Prometheus de la API.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CalculationMetrics colectores del calculador de impuestos.
type CalculationMetrics struct {
	Total    *prometheus.CounterVec
	Duration prometheus.Histogram
}

// NewCalculationMetrics registra los colectores en reg (DefaultRegisterer si es nil).
func NewCalculationMetrics(namespace string, reg prometheus.Registerer) *CalculationMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &CalculationMetrics{
		Total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tax_calculations_total",
			Help:      "Cálculos de impuestos por resultado (ok, invalid, not_found, error).",
		}, []string{"outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tax_calculation_duration_ms",
			Help:      "Duración de un cálculo en milisegundos, incluida la carga de tasas.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		}),
	}
	m.Total = register(reg, m.Total)
	m.Duration = register(reg, m.Duration)
	return m
}

// ObserveCalculation implementa billing.CalculationObserver.
func (m *CalculationMetrics) ObserveCalculation(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Total.WithLabelValues(outcome).Inc()
	m.Duration.Observe(DurationMillis(elapsed))
}

// HTTPMetrics colectores de las peticiones HTTP.
type HTTPMetrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewHTTPMetrics registra los colectores HTTP.
func NewHTTPMetrics(namespace string, reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &HTTPMetrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "Latencia HTTP en milisegundos.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Peticiones HTTP en curso.",
		}),
	}
	m.ReqTotal = register(reg, m.ReqTotal)
	m.ReqDur = register(reg, m.ReqDur)
	m.InFlight = register(reg, m.InFlight)
	return m
}

// DurationMillis convierte una duración a milisegundos.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// register registra c; si ya existía un colector equivalente lo reutiliza.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
