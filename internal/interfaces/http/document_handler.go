package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Panneaux-api/internal/application/billing"
	"github.com/jhoicas/Panneaux-api/internal/application/dto"
)

// DocumentHandler facturas, devis y bons de livraison.
type DocumentHandler struct {
	uc    *billing.DocumentUseCase
	pdfUC *billing.PDFUseCase
}

// NewDocumentHandler construye el handler. pdfUC puede ser nil si el PDF no está habilitado.
func NewDocumentHandler(uc *billing.DocumentUseCase, pdfUC *billing.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear documento
// @Description  Calcula los totales con las tasas vigentes y guarda cabecera, líneas y snapshot de tasas en una transacción.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDocumentRequest  true  "Documento"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if bad := parseBody(c, &in); bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	out, err := h.uc.CreateDocument(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "empresa no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        type    query  string  false  "invoice | quote | delivery_note"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.DocumentListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListDocuments(c.UserContext(), GetCompanyID(c), c.Query("type"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDocument(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "documento no encontrado")
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar PDF del documento
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	if h.pdfUC == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PDF_DISABLED", Message: "generación de PDF no disponible"})
	}
	pdf, filename, err := h.pdfUC.DownloadDocumentPDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "documento no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
