package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/application/usecase"
)

// TaxRateHandler gestiona las tasas configuradas de la empresa del token.
type TaxRateHandler struct {
	uc *usecase.TaxRateUseCase
}

// NewTaxRateHandler construye el handler.
func NewTaxRateHandler(uc *usecase.TaxRateUseCase) *TaxRateHandler {
	return &TaxRateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tasa
// @Description  La posición define el orden de aplicación en modo sequence.
// @Tags         tax-rates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTaxRateRequest  true  "name, rate, position"
// @Success      201   {object}  dto.TaxRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tax-rates [post]
func (h *TaxRateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaxRateRequest
	if bad := parseBody(c, &in); bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tasas
// @Tags         tax-rates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TaxRateListResponse
// @Router       /api/tax-rates [get]
func (h *TaxRateHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tasa
// @Tags         tax-rates
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la tasa"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tax-rates/{id} [delete]
func (h *TaxRateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err, "tasa no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
