package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/application/usecase"
)

// RoomHandler maneja las peticiones HTTP para Room (protegido).
type RoomHandler struct {
	uc *usecase.RoomUseCase
}

// NewRoomHandler construye el handler.
func NewRoomHandler(uc *usecase.RoomUseCase) *RoomHandler {
	return &RoomHandler{uc: uc}
}

// Create godoc
// @Summary      Crear habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoomRequest  true  "Datos de la habitación"
// @Success      201   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoomRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "edificio no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener habitación
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [get]
func (h *RoomHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "habitación no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        building_id  query  string  false  "Filtrar por edificio"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.ListResponse[dto.RoomResponse]
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("building_id"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la habitación"
// @Param        body  body  dto.UpdateRoomStatusRequest  true  "available | occupied | maintenance"
// @Success      200   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/status [patch]
func (h *RoomHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateRoomStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err, "habitación no encontrada")
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Datos de facturación de la habitación
// @Description  Número, edificio, arrendatario, código de contrato y precio mensual.
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomLookupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/lookup [get]
func (h *RoomHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "habitación no encontrada")
	}
	return c.JSON(out)
}
