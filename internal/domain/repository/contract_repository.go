package repository

import (
	"context"

	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

// ContractRepository define el puerto de persistencia para Contract.
type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error
	GetByID(ctx context.Context, id string) (*entity.Contract, error)
	// List filtra por habitación cuando roomID no es vacío.
	List(ctx context.Context, roomID string, limit, offset int) ([]*entity.Contract, error)
	// GetLatestByRoom devuelve el contrato no terminado con fecha de inicio más reciente.
	GetLatestByRoom(ctx context.Context, roomID string) (*entity.Contract, error)
	// Terminate marca el contrato como terminado; ErrNotFound si no existe.
	Terminate(ctx context.Context, id string) error
}
