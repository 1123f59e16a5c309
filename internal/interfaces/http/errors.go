package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/jhoicas/Panneaux-api/internal/application/billing"
	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/taxcalc"
	"github.com/jhoicas/Panneaux-api/pkg/validator"
)

// respondError traduce errores de dominio a respuestas HTTP.
// notFoundMsg personaliza el mensaje del 404.
func respondError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var calcErr *taxcalc.ValidationError
	if errors.As(err, &calcErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: calcErr.Reason,
			Field:   billing.RequestField(calcErr.Field),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// parseBody decodifica el JSON y valida las etiquetas `validate`.
// Devuelve nil si la petición es válida; en otro caso el cuerpo de error a responder con 400.
func parseBody(c *fiber.Ctx, dst any) *dto.ErrorResponse {
	if err := c.BodyParser(dst); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	if err := validator.Struct(dst); err != nil {
		var vErr *validator.Error
		if errors.As(err, &vErr) {
			return &dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: vErr.Error(),
				Fields: lo.Map(vErr.Fields, func(f validator.FieldError, _ int) dto.FieldIssue {
					return dto.FieldIssue{Field: f.Field, Rule: f.Rule}
				}),
			}
		}
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	return nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
