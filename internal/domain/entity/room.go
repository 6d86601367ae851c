package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de habitación.
const (
	RoomTypeStudio = "studio"
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeSuite  = "suite"
)

// Estados de habitación.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room habitación de un edificio.
type Room struct {
	ID         string
	BuildingID string
	Number     string
	Type       string // studio, single, double, suite
	Floor      int
	Status     string // available, occupied, maintenance
	BaseRent   decimal.Decimal
	Area       decimal.Decimal // m²
	Amenities  []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidRoomType indica si t es un tipo soportado.
func ValidRoomType(t string) bool {
	switch t {
	case RoomTypeStudio, RoomTypeSingle, RoomTypeDouble, RoomTypeSuite:
		return true
	}
	return false
}

// ValidRoomStatus indica si s es un estado soportado.
func ValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}
