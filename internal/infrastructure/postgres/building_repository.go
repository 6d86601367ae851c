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

var _ repository.BuildingRepository = (*BuildingRepo)(nil)

// BuildingRepo implementación de BuildingRepository (usable con pool o tx).
type BuildingRepo struct {
	q Querier
}

// NewBuildingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBuildingRepository(q Querier) *BuildingRepo {
	return &BuildingRepo{q: q}
}

const buildingColumns = `id, code, name, address, description, total_rooms, notes,
	electricity_rate, water_rate, internet_rate, created_at, updated_at`

func scanBuilding(row pgx.Row) (*entity.Building, error) {
	var b entity.Building
	err := row.Scan(&b.ID, &b.Code, &b.Name, &b.Address, &b.Description, &b.TotalRooms, &b.Notes,
		&b.ElectricityRate, &b.WaterRate, &b.InternetRate, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un nuevo edificio.
func (r *BuildingRepo) Create(ctx context.Context, b *entity.Building) error {
	query := `INSERT INTO buildings (` + buildingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Code, b.Name, b.Address, b.Description, b.TotalRooms, b.Notes,
		b.ElectricityRate, b.WaterRate, b.InternetRate, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert building: %w", err)
	}
	return nil
}

// GetByID obtiene un edificio por ID.
func (r *BuildingRepo) GetByID(ctx context.Context, id string) (*entity.Building, error) {
	b, err := scanBuilding(r.q.QueryRow(ctx, `SELECT `+buildingColumns+` FROM buildings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get building: %w", err)
	}
	return b, nil
}

// List lista edificios ordenados por código.
func (r *BuildingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Building, error) {
	rows, err := r.q.Query(ctx, `SELECT `+buildingColumns+` FROM buildings ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update actualiza los datos editables.
func (r *BuildingRepo) Update(ctx context.Context, b *entity.Building) error {
	query := `
		UPDATE buildings SET code = $2, name = $3, address = $4, description = $5, total_rooms = $6,
			notes = $7, electricity_rate = $8, water_rate = $9, internet_rate = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.Code, b.Name, b.Address, b.Description, b.TotalRooms, b.Notes,
		b.ElectricityRate, b.WaterRate, b.InternetRate, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update building: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
