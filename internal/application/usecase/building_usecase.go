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

// BuildingUseCase casos de uso CRUD para edificios.
type BuildingUseCase struct {
	repo repository.BuildingRepository
}

// NewBuildingUseCase construye el caso de uso.
func NewBuildingUseCase(repo repository.BuildingRepository) *BuildingUseCase {
	return &BuildingUseCase{repo: repo}
}

// Create crea un nuevo edificio.
func (uc *BuildingUseCase) Create(ctx context.Context, in dto.CreateBuildingRequest) (*dto.BuildingResponse, error) {
	if err := validateBuilding(in); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Building{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyBuilding(b, in, now)
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBuildingResponse(b), nil
}

// GetByID obtiene un edificio por ID.
func (uc *BuildingUseCase) GetByID(ctx context.Context, id string) (*dto.BuildingResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBuildingResponse(b), nil
}

// Update reemplaza los datos editables de un edificio.
func (uc *BuildingUseCase) Update(ctx context.Context, id string, in dto.CreateBuildingRequest) (*dto.BuildingResponse, error) {
	if err := validateBuilding(in); err != nil {
		return nil, err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	applyBuilding(b, in, time.Now())
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBuildingResponse(b), nil
}

// List lista edificios con paginación.
func (uc *BuildingUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.BuildingResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BuildingResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBuildingResponse(b))
	}
	return &dto.ListResponse[dto.BuildingResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func validateBuilding(in dto.CreateBuildingRequest) error {
	switch {
	case strings.TrimSpace(in.Code) == "":
		return fmt.Errorf("%w: code es obligatorio", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	case in.TotalRooms < 0:
		return fmt.Errorf("%w: total_rooms no puede ser negativo", domain.ErrInvalidInput)
	case in.ElectricityRate.IsNegative(), in.WaterRate.IsNegative(), in.InternetRate.IsNegative():
		return fmt.Errorf("%w: las tarifas no pueden ser negativas", domain.ErrInvalidInput)
	}
	return nil
}

func applyBuilding(b *entity.Building, in dto.CreateBuildingRequest, now time.Time) {
	b.Code = strings.TrimSpace(in.Code)
	b.Name = strings.TrimSpace(in.Name)
	b.Address = in.Address
	b.Description = in.Description
	b.TotalRooms = in.TotalRooms
	b.Notes = in.Notes
	b.ElectricityRate = in.ElectricityRate.Decimal
	b.WaterRate = in.WaterRate.Decimal
	b.InternetRate = in.InternetRate.Decimal
	b.UpdatedAt = now
}

func toBuildingResponse(b *entity.Building) *dto.BuildingResponse {
	return &dto.BuildingResponse{
		ID:              b.ID,
		Code:            b.Code,
		Name:            b.Name,
		Address:         b.Address,
		Description:     b.Description,
		TotalRooms:      b.TotalRooms,
		Notes:           b.Notes,
		ElectricityRate: b.ElectricityRate,
		WaterRate:       b.WaterRate,
		InternetRate:    b.InternetRate,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
