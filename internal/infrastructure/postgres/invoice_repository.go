package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, number, room_id, contract_code, room_number, building_code, tenant_name,
	monthly_price, from_date, to_date,
	electricity_previous, electricity_current, electricity_rate,
	water_method, water_previous, water_current, water_people, water_rate, notes,
	number_of_days, electricity_usage, electricity_total, water_usage, water_total, room_fee, grand_total,
	issued_by, issued_at, created_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var notes *string
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.RoomID, &inv.ContractCode, &inv.RoomNumber, &inv.BuildingCode, &inv.TenantName,
		&inv.MonthlyPrice, &inv.FromDate, &inv.ToDate,
		&inv.ElectricityPrevious, &inv.ElectricityCurrent, &inv.ElectricityRate,
		&inv.WaterMethod, &inv.WaterPrevious, &inv.WaterCurrent, &inv.WaterPeople, &inv.WaterRate, &notes,
		&inv.NumberOfDays, &inv.ElectricityUsage, &inv.ElectricityTotal, &inv.WaterUsage, &inv.WaterTotal,
		&inv.RoomFee, &inv.GrandTotal,
		&inv.IssuedBy, &inv.IssuedAt, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Notes = stringOrEmpty(notes)
	return &inv, nil
}

// Create persiste la cabecera de la factura (sin líneas).
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.RoomID, inv.ContractCode, inv.RoomNumber, inv.BuildingCode, inv.TenantName,
		inv.MonthlyPrice, inv.FromDate, inv.ToDate,
		inv.ElectricityPrevious, inv.ElectricityCurrent, inv.ElectricityRate,
		inv.WaterMethod, inv.WaterPrevious, inv.WaterCurrent, inv.WaterPeople, inv.WaterRate, nullIfEmpty(inv.Notes),
		inv.NumberOfDays, inv.ElectricityUsage, inv.ElectricityTotal, inv.WaterUsage, inv.WaterTotal,
		inv.RoomFee, inv.GrandTotal,
		inv.IssuedBy, inv.IssuedAt, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de servicio.
func (r *InvoiceRepo) CreateLine(ctx context.Context, l *entity.InvoiceServiceLine) error {
	query := `
		INSERT INTO invoice_service_lines (id, invoice_id, position, service_id, name, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.InvoiceID, l.Position, l.ServiceID, l.Name, l.Quantity, l.UnitPrice, l.Total)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	lines, err := r.linesByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return inv, nil
}

func (r *InvoiceRepo) linesByInvoice(ctx context.Context, invoiceID string) ([]*entity.InvoiceServiceLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, position, service_id, name, quantity, unit_price, total
		FROM invoice_service_lines WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.InvoiceServiceLine
	for rows.Next() {
		var l entity.InvoiceServiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Position, &l.ServiceID, &l.Name, &l.Quantity, &l.UnitPrice, &l.Total); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// GetLatestByRoom última factura de la habitación por fin de período.
func (r *InvoiceRepo) GetLatestByRoom(ctx context.Context, roomID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE room_id = $1 ORDER BY to_date DESC, issued_at DESC LIMIT 1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest invoice: %w", err)
	}
	return inv, nil
}

// List lista facturas (sin líneas), más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, roomID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE ($1 = '' OR room_id = $1)
		ORDER BY issued_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, roomID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
