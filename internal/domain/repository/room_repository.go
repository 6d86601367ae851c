package repository

import (
	"context"

	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

// RoomRepository define el puerto de persistencia para Room.
type RoomRepository interface {
	Create(ctx context.Context, r *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	// List filtra por edificio cuando buildingID no es vacío.
	List(ctx context.Context, buildingID string, limit, offset int) ([]*entity.Room, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
