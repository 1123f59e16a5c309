package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/application/usecase"
)

// LessorHandler arrendadores de los emplazamientos publicitarios.
type LessorHandler struct {
	uc *usecase.LessorUseCase
}

// NewLessorHandler construye el handler.
func NewLessorHandler(uc *usecase.LessorUseCase) *LessorHandler {
	return &LessorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear arrendador
// @Description  data depende de type: private_physical, private_moral o public.
// @Tags         lessors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateLessorRequest  true  "type + data"
// @Success      201   {object}  dto.LessorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lessors [post]
func (h *LessorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLessorRequest
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
// @Summary      Listar arrendadores
// @Tags         lessors
// @Produce      json
// @Security     BearerAuth
// @Param        type    query  string  false  "private_physical | private_moral | public"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.LessorListResponse
// @Router       /api/lessors [get]
func (h *LessorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), c.Query("type"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar arrendador
// @Tags         lessors
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del arrendador"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lessors/{id} [delete]
func (h *LessorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err, "arrendador no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
