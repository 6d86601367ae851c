package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rental-api/internal/application/usecase"
)

// ServiceHandler expone el catálogo de servicios adicionales.
type ServiceHandler struct {
	uc *usecase.ServiceUseCase
}

// NewServiceHandler construye el handler.
func NewServiceHandler(uc *usecase.ServiceUseCase) *ServiceHandler {
	return &ServiceHandler{uc: uc}
}

// List godoc
// @Summary      Catálogo de servicios
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}
