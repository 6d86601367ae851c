package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

// RoomInvalidator descarta datos cacheados de una habitación.
type RoomInvalidator interface {
	Invalidate(ctx context.Context, roomID string)
}

// ContractUseCase casos de uso de contratos.
type ContractUseCase struct {
	repo      repository.ContractRepository
	roomRepo  repository.RoomRepository
	roomCache RoomInvalidator
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(repo repository.ContractRepository, roomRepo repository.RoomRepository) *ContractUseCase {
	return &ContractUseCase{repo: repo, roomRepo: roomRepo}
}

// WithRoomCache invalida el lookup cacheado de la habitación al registrar un contrato.
func (uc *ContractUseCase) WithRoomCache(inv RoomInvalidator) *ContractUseCase {
	uc.roomCache = inv
	return uc
}

// Create registra un contrato y marca la habitación como ocupada.
// Si monthly_rent viene en cero se usa el canon base de la habitación.
func (uc *ContractUseCase) Create(ctx context.Context, in dto.CreateContractRequest) (*dto.ContractResponse, error) {
	switch {
	case strings.TrimSpace(in.Code) == "":
		return nil, fmt.Errorf("%w: code es obligatorio", domain.ErrInvalidInput)
	case strings.TrimSpace(in.TenantName) == "":
		return nil, fmt.Errorf("%w: tenant_name es obligatorio", domain.ErrInvalidInput)
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return nil, fmt.Errorf("%w: start_date y end_date son obligatorios", domain.ErrInvalidInput)
	case in.EndDate.Before(in.StartDate.Time):
		return nil, fmt.Errorf("%w: end_date debe ser posterior a start_date", domain.ErrInvalidInput)
	case in.MonthlyRent.IsNegative():
		return nil, fmt.Errorf("%w: monthly_rent no puede ser negativo", domain.ErrInvalidInput)
	}

	room, err := uc.roomRepo.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}

	rent := in.MonthlyRent.Decimal
	if rent.IsZero() {
		rent = room.BaseRent
	}
	now := time.Now()
	c := &entity.Contract{
		ID:          uuid.New().String(),
		Code:        strings.TrimSpace(in.Code),
		RoomID:      room.ID,
		TenantName:  strings.TrimSpace(in.TenantName),
		TenantPhone: in.TenantPhone,
		StartDate:   in.StartDate.Time,
		EndDate:     in.EndDate.Time,
		MonthlyRent: rent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	if uc.roomCache != nil {
		uc.roomCache.Invalidate(ctx, room.ID)
	}
	if c.IsCurrent(now) && room.Status != entity.RoomStatusOccupied {
		if err := uc.roomRepo.UpdateStatus(ctx, room.ID, entity.RoomStatusOccupied); err != nil {
			return nil, err
		}
	}
	return toContractResponse(c, now), nil
}

// Terminate termina un contrato vigente. Si la habitación queda sin otro contrato vigente y
// estaba ocupada pasa a available. ErrNotFound si no existe, ErrConflict si ya estaba terminado.
func (uc *ContractUseCase) Terminate(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.Terminated {
		return nil, fmt.Errorf("%w: el contrato %s ya está terminado", domain.ErrConflict, c.Code)
	}
	if err := uc.repo.Terminate(ctx, c.ID); err != nil {
		return nil, err
	}
	c.Terminated = true
	now := time.Now()
	c.UpdatedAt = now

	if err := uc.releaseRoom(ctx, c.RoomID, now); err != nil {
		return nil, err
	}
	if uc.roomCache != nil {
		uc.roomCache.Invalidate(ctx, c.RoomID)
	}
	return toContractResponse(c, now), nil
}

// releaseRoom deja la habitación disponible si ningún otro contrato la ocupa.
// Una habitación en mantenimiento no cambia.
func (uc *ContractUseCase) releaseRoom(ctx context.Context, roomID string, now time.Time) error {
	next, err := uc.repo.GetLatestByRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if next != nil && next.IsCurrent(now) {
		return nil
	}
	room, err := uc.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil || room.Status != entity.RoomStatusOccupied {
		return nil
	}
	return uc.roomRepo.UpdateStatus(ctx, roomID, entity.RoomStatusAvailable)
}

// GetByID obtiene un contrato con su estado a hoy.
func (uc *ContractUseCase) GetByID(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toContractResponse(c, time.Now()), nil
}

// List lista contratos, opcionalmente de una habitación.
func (uc *ContractUseCase) List(ctx context.Context, roomID string, page dto.PageRequest) (*dto.ListResponse[dto.ContractResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, roomID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContractResponse(c, now))
	}
	return &dto.ListResponse[dto.ContractResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toContractResponse(c *entity.Contract, now time.Time) *dto.ContractResponse {
	return &dto.ContractResponse{
		ID:          c.ID,
		Code:        c.Code,
		RoomID:      c.RoomID,
		TenantName:  c.TenantName,
		TenantPhone: c.TenantPhone,
		StartDate:   dto.NewDate(c.StartDate),
		EndDate:     dto.NewDate(c.EndDate),
		MonthlyRent: c.MonthlyRent,
		Status:      c.Status(now),
		CreatedAt:   c.CreatedAt,
	}
}
