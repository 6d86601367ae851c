package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only del panel.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountBuildings total de edificios.
func (r *DashboardRepo) CountBuildings(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM buildings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count buildings: %w", err)
	}
	return n, nil
}

// CountRooms habitaciones por estado.
func (r *DashboardRepo) CountRooms(ctx context.Context) (repository.RoomCounts, error) {
	var c repository.RoomCounts
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'occupied'),
			COUNT(*) FILTER (WHERE status = 'available'),
			COUNT(*) FILTER (WHERE status = 'maintenance')
		FROM rooms`).Scan(&c.Total, &c.Occupied, &c.Available, &c.Maintenance)
	if err != nil {
		return c, fmt.Errorf("count rooms: %w", err)
	}
	return c, nil
}

// InvoiceTotals facturas emitidas en [from, to) y suma de sus totales (cero si no hay).
func (r *DashboardRepo) InvoiceTotals(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	var n int
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM invoices WHERE issued_at >= $1 AND issued_at < $2`, from, to).Scan(&n, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("invoice totals: %w", err)
	}
	return n, total, nil
}

// CountExpiringContracts contratos no terminados con end_date en [from, to].
func (r *DashboardRepo) CountExpiringContracts(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM contracts
		WHERE NOT terminated AND end_date BETWEEN $1::date AND $2::date`, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count expiring contracts: %w", err)
	}
	return n, nil
}
