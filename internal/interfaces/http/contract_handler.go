package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/application/usecase"
)

// ContractHandler maneja contratos de arriendo (protegido).
type ContractHandler struct {
	uc *usecase.ContractUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(uc *usecase.ContractUseCase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

// Create crea un contrato y marca la habitación como ocupada.
// POST /api/contracts
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContractRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "habitación no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/contracts/:id
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "contrato no encontrado")
	}
	return c.JSON(out)
}

// List GET /api/contracts?room_id=
func (h *ContractHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("room_id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Terminate POST /api/contracts/:id/terminate
func (h *ContractHandler) Terminate(c *fiber.Ctx) error {
	out, err := h.uc.Terminate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "contrato no encontrado")
	}
	return c.JSON(out)
}
