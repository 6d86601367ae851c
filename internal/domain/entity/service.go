package entity

import "github.com/shopspring/decimal"

// Service servicio adicional del catálogo (WiFi, lavandería, parqueadero...).
type Service struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
}
