package repository

import (
	"context"

	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

// BuildingRepository define el puerto de persistencia para Building.
type BuildingRepository interface {
	Create(ctx context.Context, b *entity.Building) error
	GetByID(ctx context.Context, id string) (*entity.Building, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Building, error)
	Update(ctx context.Context, b *entity.Building) error
}
