package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Rental-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve ocupación y facturación del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (buildings, rooms_*, occupancy_rate,
// invoices_this_month, billed_this_month, contracts_expiring, date_label).
// Las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), time.Now())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(summary)
}
