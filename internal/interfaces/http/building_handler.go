package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/application/usecase"
)

// BuildingHandler maneja las peticiones HTTP para Building (protegido).
type BuildingHandler struct {
	uc *usecase.BuildingUseCase
}

// NewBuildingHandler construye el handler.
func NewBuildingHandler(uc *usecase.BuildingUseCase) *BuildingHandler {
	return &BuildingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear edificio
// @Tags         buildings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBuildingRequest  true  "Datos del edificio"
// @Success      201   {object}  dto.BuildingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/buildings [post]
func (h *BuildingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBuildingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener edificio
// @Tags         buildings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del edificio"
// @Success      200  {object}  dto.BuildingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/buildings/{id} [get]
func (h *BuildingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "edificio no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar edificio
// @Tags         buildings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del edificio"
// @Param        body  body  dto.CreateBuildingRequest  true  "Datos del edificio"
// @Success      200   {object}  dto.BuildingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/buildings/{id} [put]
func (h *BuildingHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateBuildingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "edificio no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar edificios
// @Tags         buildings
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.BuildingResponse]
// @Router       /api/buildings [get]
func (h *BuildingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}
