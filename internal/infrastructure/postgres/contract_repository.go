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

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación de ContractRepository.
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador.
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractColumns = `id, code, room_id, tenant_name, tenant_phone, start_date, end_date,
	monthly_rent, terminated, created_at, updated_at`

func scanContract(row pgx.Row) (*entity.Contract, error) {
	var c entity.Contract
	err := row.Scan(&c.ID, &c.Code, &c.RoomID, &c.TenantName, &c.TenantPhone, &c.StartDate, &c.EndDate,
		&c.MonthlyRent, &c.Terminated, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un contrato.
func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Code, c.RoomID, c.TenantName, c.TenantPhone, c.StartDate, c.EndDate,
		c.MonthlyRent, c.Terminated, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID.
func (r *ContractRepo) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	c, err := scanContract(r.q.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return c, nil
}

// List lista contratos; roomID vacío = todos.
func (r *ContractRepo) List(ctx context.Context, roomID string, limit, offset int) ([]*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
		WHERE ($1 = '' OR room_id = $1)
		ORDER BY start_date DESC, code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, roomID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetLatestByRoom contrato no terminado más reciente de la habitación.
func (r *ContractRepo) GetLatestByRoom(ctx context.Context, roomID string) (*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
		WHERE room_id = $1 AND NOT terminated
		ORDER BY start_date DESC LIMIT 1`
	c, err := scanContract(r.q.QueryRow(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest contract: %w", err)
	}
	return c, nil
}

// Terminate marca terminated = TRUE.
func (r *ContractRepo) Terminate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE contracts SET terminated = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("terminate contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
