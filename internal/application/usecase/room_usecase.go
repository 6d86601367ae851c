package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

// RoomUseCase casos de uso de habitaciones.
type RoomUseCase struct {
	repo         repository.RoomRepository
	buildingRepo repository.BuildingRepository
	lookup       billing.RoomLookup
}

// NewRoomUseCase construye el caso de uso.
func NewRoomUseCase(repo repository.RoomRepository, buildingRepo repository.BuildingRepository, lookup billing.RoomLookup) *RoomUseCase {
	return &RoomUseCase{repo: repo, buildingRepo: buildingRepo, lookup: lookup}
}

// Create crea una habitación en un edificio existente.
func (uc *RoomUseCase) Create(ctx context.Context, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if strings.TrimSpace(in.Number) == "" {
		return nil, fmt.Errorf("%w: number es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidRoomType(in.Type) {
		return nil, fmt.Errorf("%w: type debe ser studio, single, double o suite", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.RoomStatusAvailable
	}
	if !entity.ValidRoomStatus(status) {
		return nil, fmt.Errorf("%w: status inválido", domain.ErrInvalidInput)
	}
	if in.BaseRent.IsNegative() || in.Area.IsNegative() {
		return nil, fmt.Errorf("%w: base_rent y area no pueden ser negativos", domain.ErrInvalidInput)
	}
	b, err := uc.buildingRepo.GetByID(ctx, in.BuildingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	room := &entity.Room{
		ID:         uuid.New().String(),
		BuildingID: b.ID,
		Number:     strings.TrimSpace(in.Number),
		Type:       in.Type,
		Floor:      in.Floor,
		Status:     status,
		BaseRent:   in.BaseRent.Decimal,
		Area:       in.Area.Decimal,
		Amenities:  in.Amenities,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// GetByID obtiene una habitación.
func (uc *RoomUseCase) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	return toRoomResponse(room), nil
}

// List lista habitaciones, opcionalmente de un edificio.
func (uc *RoomUseCase) List(ctx context.Context, buildingID string, page dto.PageRequest) (*dto.ListResponse[dto.RoomResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, buildingID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoomResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRoomResponse(r))
	}
	return &dto.ListResponse[dto.RoomResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus cambia el estado (available, occupied, maintenance).
func (uc *RoomUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.RoomResponse, error) {
	if !entity.ValidRoomStatus(status) {
		return nil, fmt.Errorf("%w: status inválido", domain.ErrInvalidInput)
	}
	room, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	room.Status = status
	room.UpdatedAt = time.Now()
	return toRoomResponse(room), nil
}

// Lookup datos de habitación + contrato para el formulario de factura.
func (uc *RoomUseCase) Lookup(ctx context.Context, id string) (*dto.RoomLookupResponse, error) {
	d, err := uc.lookup.LookupRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.RoomLookupResponse{
		RoomID:       d.RoomID,
		RoomNumber:   d.RoomNumber,
		BuildingCode: d.BuildingCode,
		TenantName:   d.TenantName,
		ContractCode: d.ContractCode,
		Price:        d.Price,
	}, nil
}

func toRoomResponse(r *entity.Room) *dto.RoomResponse {
	amenities := r.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &dto.RoomResponse{
		ID:         r.ID,
		BuildingID: r.BuildingID,
		Number:     r.Number,
		Type:       r.Type,
		Floor:      r.Floor,
		Status:     r.Status,
		BaseRent:   r.BaseRent,
		Area:       r.Area,
		Amenities:  amenities,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
