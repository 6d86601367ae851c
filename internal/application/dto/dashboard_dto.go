package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Buildings         int             `json:"buildings"`
	RoomsTotal        int             `json:"rooms_total"`
	RoomsOccupied     int             `json:"rooms_occupied"`
	RoomsAvailable    int             `json:"rooms_available"`
	RoomsMaintenance  int             `json:"rooms_maintenance"`
	OccupancyRate     decimal.Decimal `json:"occupancy_rate"` // porcentaje, 1 decimal
	InvoicesThisMonth int             `json:"invoices_this_month"`
	BilledThisMonth   decimal.Decimal `json:"billed_this_month"`
	ContractsExpiring int             `json:"contracts_expiring"` // vencen en los próximos 30 días
	DateLabel         string          `json:"date_label"`         // ej: "March 2024"
}
