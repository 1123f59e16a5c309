package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panneaux-api/internal/application/billing"
	"github.com/jhoicas/Panneaux-api/internal/application/dto"
)

// CalculationHandler expone el calculador sin persistir nada.
type CalculationHandler struct {
	uc *billing.CalculateUseCase
}

// NewCalculationHandler construye el handler.
func NewCalculationHandler(uc *billing.CalculateUseCase) *CalculationHandler {
	return &CalculationHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular totales
// @Description  Calcula HT, impuestos por tasa, descuento global y TTC con las tasas de la empresa.
// @Description  Con rounded=true la respuesta incluye además una copia redondeada a 2 decimales.
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        rounded  query  bool                    false  "Incluir totales redondeados"
// @Param        body     body   dto.CalculationRequest  true   "Líneas y descuentos"
// @Success      200      {object}  dto.CalculationResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Router       /api/calculations [post]
func (h *CalculationHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculationRequest
	if bad := parseBody(c, &in); bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	places := int32(-1)
	if c.QueryBool("rounded", false) {
		places = 2
	}
	out, err := h.uc.Calculate(c.UserContext(), GetCompanyID(c), in, places)
	if err != nil {
		return respondError(c, err, "empresa no encontrada")
	}
	return c.JSON(out)
}
