package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Building edificio administrado. Las tarifas son las que se proponen por defecto
// en los borradores de factura de sus habitaciones (cero = usar la tarifa global).
type Building struct {
	ID              string
	Code            string // BLDG-A, BLDG-B...
	Name            string
	Address         string
	Description     string
	TotalRooms      int
	Notes           string
	ElectricityRate decimal.Decimal // VND por kWh
	WaterRate       decimal.Decimal // VND por m³ o por persona
	InternetRate    decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
