package repository

import (
	"context"

	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

// ServiceRepository catálogo de servicios adicionales.
type ServiceRepository interface {
	List(ctx context.Context) ([]*entity.Service, error)
}
