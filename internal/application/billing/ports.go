package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

// RoomDetails datos de una habitación con su contrato vigente, listos para facturar.
// ElectricityRate/WaterRate son las tarifas del edificio; cero si el edificio no define.
type RoomDetails struct {
	RoomID          string
	RoomNumber      string
	BuildingCode    string
	TenantName      string
	ContractCode    string
	Price           decimal.Decimal
	ElectricityRate decimal.Decimal
	WaterRate       decimal.Decimal
}

// RoomInfo convierte a los datos de habitación que usa el motor de cálculo.
func (d *RoomDetails) RoomInfo() engine.RoomInfo {
	return engine.RoomInfo{
		RoomID:       d.RoomID,
		RoomNumber:   d.RoomNumber,
		BuildingCode: d.BuildingCode,
		TenantName:   d.TenantName,
		ContractCode: d.ContractCode,
		MonthlyPrice: d.Price,
	}
}

// RoomLookup resuelve habitación + contrato vigente.
// Errores: domain.ErrNotFound si la habitación no existe, domain.ErrNoActiveContract si no tiene contrato.
type RoomLookup interface {
	LookupRoom(ctx context.Context, roomID string) (*RoomDetails, error)
}

// ServiceCatalog catálogo de servicios adicionales.
type ServiceCatalog interface {
	ListServices(ctx context.Context) ([]*entity.Service, error)
}

// InvoiceDocument metadatos de impresión que no vienen del cálculo.
type InvoiceDocument struct {
	Number   string
	IssuedAt time.Time
}

// InvoicePDFGenerator genera la representación PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, out engine.Output, doc InvoiceDocument) ([]byte, error)
}

// EventInvoiceIssued tipo del evento publicado al emitir una factura.
const EventInvoiceIssued = "invoice.issued"

// InvoiceIssuedEvent payload del evento de factura emitida.
type InvoiceIssuedEvent struct {
	Type         string          `json:"type"`
	InvoiceID    string          `json:"invoice_id"`
	Number       string          `json:"number"`
	RoomID       string          `json:"room_id"`
	ContractCode string          `json:"contract_code"`
	TenantName   string          `json:"tenant_name"`
	FromDate     string          `json:"from_date"`
	ToDate       string          `json:"to_date"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	IssuedAt     time.Time       `json:"issued_at"`
}

// InvoicePublisher publica eventos de facturación (best effort).
type InvoicePublisher interface {
	PublishInvoiceIssued(ctx context.Context, evt InvoiceIssuedEvent) error
}

// BillingTxRunner ejecuta una función dentro de una transacción con el repositorio de facturas.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}
