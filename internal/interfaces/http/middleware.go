package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panneaux-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, estado y latencia.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.WithComponent("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := statusOf(c, err)

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("company_id", GetCompanyID(c)).
			Msg("petición atendida")
		return err
	}
}

// Metrics alimenta los colectores HTTP; la ruta es el patrón registrado (/api/documents/:id).
func Metrics(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		m.ReqTotal.WithLabelValues(c.Method(), route, strconv.Itoa(statusOf(c, err))).Inc()
		m.ReqDur.WithLabelValues(c.Method(), route).Observe(metrics.DurationMillis(time.Since(start)))
		return err
	}
}

// statusOf el estado final; si el handler devolvió error aún no está escrito en la respuesta.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
