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

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo implementación de RoomRepository.
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador.
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

const roomColumns = `id, building_id, number, type, floor, status, base_rent, area, amenities, created_at, updated_at`

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var rm entity.Room
	err := row.Scan(&rm.ID, &rm.BuildingID, &rm.Number, &rm.Type, &rm.Floor, &rm.Status,
		&rm.BaseRent, &rm.Area, &rm.Amenities, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// Create persiste una habitación.
func (r *RoomRepo) Create(ctx context.Context, rm *entity.Room) error {
	amenities := rm.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	query := `INSERT INTO rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		rm.ID, rm.BuildingID, rm.Number, rm.Type, rm.Floor, rm.Status,
		rm.BaseRent, rm.Area, amenities, rm.CreatedAt, rm.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

// GetByID obtiene una habitación por ID.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	rm, err := scanRoom(r.q.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return rm, nil
}

// List lista habitaciones; buildingID vacío = todas.
func (r *RoomRepo) List(ctx context.Context, buildingID string, limit, offset int) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms
		WHERE ($1 = '' OR building_id = $1)
		ORDER BY building_id, number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, buildingID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, rm)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la habitación.
func (r *RoomRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE rooms SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
