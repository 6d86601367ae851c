package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

var (
	_ billing.RoomLookup     = (*Catalog)(nil)
	_ billing.ServiceCatalog = (*Catalog)(nil)
)

// Catalog resuelve habitación + contrato vigente y el catálogo de servicios desde PostgreSQL.
type Catalog struct {
	q        Querier
	services *ServiceRepo
}

// NewCatalog construye el adaptador.
func NewCatalog(q Querier) *Catalog {
	return &Catalog{q: q, services: NewServiceRepository(q)}
}

// LookupRoom une habitación, edificio y el contrato no terminado más reciente.
// Un contrato vencido no cuenta como vigente.
func (c *Catalog) LookupRoom(ctx context.Context, roomID string) (*billing.RoomDetails, error) {
	var (
		d            billing.RoomDetails
		contractCode *string
		tenantName   *string
		endDate      *time.Time
		rent         decimal.NullDecimal
	)
	err := c.q.QueryRow(ctx, `
		SELECT r.id, r.number, b.code, b.electricity_rate, b.water_rate,
			ct.code, ct.tenant_name, ct.end_date, ct.monthly_rent
		FROM rooms r
		JOIN buildings b ON b.id = r.building_id
		LEFT JOIN LATERAL (
			SELECT code, tenant_name, end_date, monthly_rent FROM contracts
			WHERE room_id = r.id AND NOT terminated
			ORDER BY start_date DESC LIMIT 1
		) ct ON true
		WHERE r.id = $1`, roomID).Scan(
		&d.RoomID, &d.RoomNumber, &d.BuildingCode, &d.ElectricityRate, &d.WaterRate,
		&contractCode, &tenantName, &endDate, &rent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lookup room: %w", err)
	}
	if contractCode == nil {
		return nil, domain.ErrNoActiveContract
	}
	ct := entity.Contract{EndDate: *endDate}
	if !ct.IsCurrent(time.Now()) {
		return nil, domain.ErrNoActiveContract
	}
	d.ContractCode = *contractCode
	d.TenantName = stringOrEmpty(tenantName)
	d.Price = rent.Decimal
	return &d, nil
}

// ListServices catálogo de servicios.
func (c *Catalog) ListServices(ctx context.Context) ([]*entity.Service, error) {
	return c.services.List(ctx)
}
