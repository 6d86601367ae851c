package repository

import (
	"context"

	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Las facturas no se actualizan: una vez emitidas son inmutables.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	CreateLine(ctx context.Context, line *entity.InvoiceServiceLine) error
	// GetByID incluye las líneas de servicio ordenadas por posición.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetLatestByRoom última factura de la habitación (por fecha final del período), sin líneas.
	GetLatestByRoom(ctx context.Context, roomID string) (*entity.Invoice, error)
	// List filtra por habitación cuando roomID no es vacío. Sin líneas.
	List(ctx context.Context, roomID string, limit, offset int) ([]*entity.Invoice, error)
}
