package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RoomCounts conteo de habitaciones por estado.
type RoomCounts struct {
	Total       int
	Occupied    int
	Available   int
	Maintenance int
}

// DashboardRepository consultas read-only para el resumen del panel.
type DashboardRepository interface {
	CountBuildings(ctx context.Context) (int, error)
	CountRooms(ctx context.Context) (RoomCounts, error)
	// InvoiceTotals cantidad de facturas emitidas en [from, to) y suma de sus totales.
	InvoiceTotals(ctx context.Context, from, to time.Time) (count int, total decimal.Decimal, err error)
	// CountExpiringContracts contratos no terminados que vencen en [from, to].
	CountExpiringContracts(ctx context.Context, from, to time.Time) (int, error)
}
