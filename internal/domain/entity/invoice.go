package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura emitida: snapshot inmutable de los datos digitados y de los valores
// derivados al momento de emitirla.
type Invoice struct {
	ID           string
	Number       string // INV-<contrato>-<yyyyMMdd>
	RoomID       string
	ContractCode string
	RoomNumber   string
	BuildingCode string
	TenantName   string
	MonthlyPrice decimal.Decimal
	FromDate     time.Time
	ToDate       time.Time

	ElectricityPrevious decimal.Decimal
	ElectricityCurrent  decimal.Decimal
	ElectricityRate     decimal.Decimal
	WaterMethod         string // meter, people
	WaterPrevious       decimal.Decimal
	WaterCurrent        decimal.Decimal
	WaterPeople         int
	WaterRate           decimal.Decimal
	Notes               string

	NumberOfDays     int
	ElectricityUsage decimal.Decimal
	ElectricityTotal decimal.Decimal
	WaterUsage       decimal.Decimal
	WaterTotal       decimal.Decimal
	RoomFee          decimal.Decimal
	GrandTotal       decimal.Decimal

	IssuedBy  string // user ID del operador
	IssuedAt  time.Time
	CreatedAt time.Time

	Lines []*InvoiceServiceLine
}

// InvoiceServiceLine línea de servicio de una factura (incluye las de cantidad cero).
type InvoiceServiceLine struct {
	ID        string
	InvoiceID string
	Position  int
	ServiceID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}
