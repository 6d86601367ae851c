package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBuildingRequest entrada para crear o actualizar un edificio.
type CreateBuildingRequest struct {
	Code            string `json:"code" validate:"required,min=1,max=50"`
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Address         string `json:"address" validate:"omitempty,max=300"`
	Description     string `json:"description"`
	TotalRooms      int    `json:"total_rooms" validate:"min=0"`
	Notes           string `json:"notes"`
	ElectricityRate Amount `json:"electricity_rate"`
	WaterRate       Amount `json:"water_rate"`
	InternetRate    Amount `json:"internet_rate"`
}

// BuildingResponse salida de un edificio.
type BuildingResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	Description     string          `json:"description"`
	TotalRooms      int             `json:"total_rooms"`
	Notes           string          `json:"notes"`
	ElectricityRate decimal.Decimal `json:"electricity_rate"`
	WaterRate       decimal.Decimal `json:"water_rate"`
	InternetRate    decimal.Decimal `json:"internet_rate"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateRoomRequest entrada para crear una habitación.
type CreateRoomRequest struct {
	BuildingID string   `json:"building_id" validate:"required"`
	Number     string   `json:"number" validate:"required,min=1,max=20"`
	Type       string   `json:"type" validate:"required,oneof=studio single double suite"`
	Floor      int      `json:"floor"`
	Status     string   `json:"status" validate:"omitempty,oneof=available occupied maintenance"` // por defecto available
	BaseRent   Amount   `json:"base_rent"`
	Area       Amount   `json:"area"`
	Amenities  []string `json:"amenities"`
}

// UpdateRoomStatusRequest entrada para PATCH /api/rooms/:id/status.
type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance"`
}

// RoomResponse salida de una habitación.
type RoomResponse struct {
	ID         string          `json:"id"`
	BuildingID string          `json:"building_id"`
	Number     string          `json:"number"`
	Type       string          `json:"type"`
	Floor      int             `json:"floor"`
	Status     string          `json:"status"`
	BaseRent   decimal.Decimal `json:"base_rent"`
	Area       decimal.Decimal `json:"area"`
	Amenities  []string        `json:"amenities"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// RoomLookupResponse datos que usa el formulario de factura al elegir habitación.
type RoomLookupResponse struct {
	RoomID       string          `json:"room_id"`
	RoomNumber   string          `json:"room_number"`
	BuildingCode string          `json:"building_code"`
	TenantName   string          `json:"tenant_name"`
	ContractCode string          `json:"contract_code"`
	Price        decimal.Decimal `json:"price"`
}

// CreateContractRequest entrada para crear un contrato.
type CreateContractRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=50"`
	RoomID      string `json:"room_id" validate:"required"`
	TenantName  string `json:"tenant_name" validate:"required,min=1,max=200"`
	TenantPhone string `json:"tenant_phone" validate:"omitempty,max=30"`
	StartDate   Date   `json:"start_date" validate:"required"`
	EndDate     Date   `json:"end_date" validate:"required"`
	MonthlyRent Amount `json:"monthly_rent"` // cero = canon base de la habitación
}

// ContractResponse salida de un contrato con su estado calculado.
type ContractResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	RoomID      string          `json:"room_id"`
	TenantName  string          `json:"tenant_name"`
	TenantPhone string          `json:"tenant_phone"`
	StartDate   Date            `json:"start_date"`
	EndDate     Date            `json:"end_date"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ServiceResponse servicio del catálogo.
type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// ListResponse envoltura genérica de listados paginados.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}
