// Package analytics contiene el resumen del panel: ocupación y facturación del mes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del panel administrativo.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary construye el DashboardSummaryDTO a la fecha now.
//
// Cuatro consultas en paralelo:
//  1. CountBuildings
//  2. CountRooms                 → ocupación
//  3. InvoiceTotals(mes)         → facturas y monto del mes
//  4. CountExpiringContracts     → contratos que vencen en 30 días
func (uc *DashboardUseCase) GetSummary(ctx context.Context, now time.Time) (*dto.DashboardSummaryDTO, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expiringEnd := today.AddDate(0, 0, entity.ContractExpiringWindow)

	type countResult struct {
		n   int
		err error
	}
	type roomsResult struct {
		counts repository.RoomCounts
		err    error
	}
	type invoicesResult struct {
		count int
		total decimal.Decimal
		err   error
	}

	buildingsCh := make(chan countResult, 1)
	roomsCh := make(chan roomsResult, 1)
	invoicesCh := make(chan invoicesResult, 1)
	expiringCh := make(chan countResult, 1)

	go func() {
		n, err := uc.repo.CountBuildings(ctx)
		buildingsCh <- countResult{n, err}
	}()
	go func() {
		c, err := uc.repo.CountRooms(ctx)
		roomsCh <- roomsResult{c, err}
	}()
	go func() {
		n, total, err := uc.repo.InvoiceTotals(ctx, monthStart, monthEnd)
		invoicesCh <- invoicesResult{n, total, err}
	}()
	go func() {
		n, err := uc.repo.CountExpiringContracts(ctx, today, expiringEnd)
		expiringCh <- countResult{n, err}
	}()

	buildings := <-buildingsCh
	rooms := <-roomsCh
	invoices := <-invoicesCh
	expiring := <-expiringCh

	if buildings.err != nil {
		return nil, fmt.Errorf("dashboard: edificios: %w", buildings.err)
	}
	if rooms.err != nil {
		return nil, fmt.Errorf("dashboard: habitaciones: %w", rooms.err)
	}
	if invoices.err != nil {
		return nil, fmt.Errorf("dashboard: facturas del mes: %w", invoices.err)
	}
	if expiring.err != nil {
		return nil, fmt.Errorf("dashboard: contratos por vencer: %w", expiring.err)
	}

	return &dto.DashboardSummaryDTO{
		Buildings:         buildings.n,
		RoomsTotal:        rooms.counts.Total,
		RoomsOccupied:     rooms.counts.Occupied,
		RoomsAvailable:    rooms.counts.Available,
		RoomsMaintenance:  rooms.counts.Maintenance,
		OccupancyRate:     occupancyRate(rooms.counts),
		InvoicesThisMonth: invoices.count,
		BilledThisMonth:   invoices.total,
		ContractsExpiring: expiring.n,
		DateLabel:         now.Format("January 2006"),
	}, nil
}

// occupancyRate porcentaje de habitaciones ocupadas, redondeado a 1 decimal.
func occupancyRate(c repository.RoomCounts) decimal.Decimal {
	if c.Total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(c.Occupied)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(c.Total))).
		Round(1)
}
