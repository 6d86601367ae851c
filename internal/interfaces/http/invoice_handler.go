package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/dto"
)

// InvoiceHandler maneja borradores, emisión y PDF de facturas (protegido).
type InvoiceHandler struct {
	draftUC  *billing.DraftUseCase
	createUC *billing.CreateInvoiceUseCase
	pdfUC    *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(draftUC *billing.DraftUseCase, createUC *billing.CreateInvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{draftUC: draftUC, createUC: createUC, pdfUC: pdfUC}
}

// Draft godoc
// @Summary      Borrador de factura con valores por defecto
// @Description  Con room_id completa habitación, contrato, tarifas del edificio y lecturas anteriores.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NewDraftRequest  false  "room_id opcional"
// @Success      200   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/draft [post]
func (h *InvoiceHandler) Draft(c *fiber.Ctx) error {
	var in dto.NewDraftRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.draftUC.NewDraft(c.Context(), in.RoomID)
	if err != nil {
		return respondError(c, err, "habitación no encontrada")
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Recalcular un borrador
// @Description  Devuelve los valores derivados del input recibido. No valida ni guarda.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceInputDTO  true  "Datos del formulario"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.InvoiceInputDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(h.draftUC.Preview(in))
}

// Create godoc
// @Summary      Emitir factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceInputDTO  true  "Datos del formulario"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.InvoiceInputDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.createUC.CreateInvoice(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err, "habitación no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        room_id  query  string  false  "Filtrar por habitación"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.ListResponse[dto.InvoiceSummaryDTO]
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.createUC.ListInvoices(c.Context(), c.Query("room_id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.createUC.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	body, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
