package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Panneaux-api/internal/infrastructure/metrics"
)

func TestCalculationMetrics_CuentaPorResultado(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewCalculationMetrics("test", reg)

	m.ObserveCalculation("ok", 2*time.Millisecond)
	m.ObserveCalculation("ok", 3*time.Millisecond)
	m.ObserveCalculation("invalid", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Total.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Total.WithLabelValues("invalid")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestCalculationMetrics_RegistroDobleReutiliza(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := metrics.NewCalculationMetrics("test", reg)
	b := metrics.NewCalculationMetrics("test", reg)

	a.ObserveCalculation("ok", time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(b.Total.WithLabelValues("ok")))
}

func TestCalculationMetrics_NilNoFalla(t *testing.T) {
	var m *metrics.CalculationMetrics
	assert.NotPanics(t, func() { m.ObserveCalculation("ok", time.Millisecond) })
}

func TestHTTPMetrics_Registra(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics("test", reg)

	m.ReqTotal.WithLabelValues("GET", "/health", "200").Inc()
	m.InFlight.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReqTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InFlight))
}

func TestDurationMillis(t *testing.T) {
	assert.Equal(t, 1.5, metrics.DurationMillis(1500*time.Microsecond))
}
