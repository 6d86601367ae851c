package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rental-api/internal/domain/billing"
)

// DateLayout formato de fecha de los formularios (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Amount decimal que acepta número o texto en JSON. Un valor ilegible queda en 0.
type Amount struct {
	decimal.Decimal
}

// NewAmount envuelve un decimal.
func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

// UnmarshalJSON aplica la misma conversión laxa que el formulario.
func (a *Amount) UnmarshalJSON(b []byte) error {
	a.Decimal = billing.CoerceAmount(rawJSONText(b))
	return nil
}

// Quantity entero que acepta número o texto en JSON. Un valor ilegible queda en 0.
type Quantity int

// UnmarshalJSON trunca hacia cero cualquier número recibido.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	*q = Quantity(billing.CoerceQuantity(rawJSONText(b)))
	return nil
}

// Date fecha calendario sin hora. Acepta "2006-01-02" o RFC3339; otra cosa queda vacía
// y la validación la reporta como obligatoria.
type Date struct {
	time.Time
}

// NewDate envuelve un time.Time.
func NewDate(t time.Time) Date { return Date{Time: t} }

// UnmarshalJSON ver Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(rawJSONText(b))
	d.Time = time.Time{}
	if s == "" {
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
	}
	return nil
}

// MarshalJSON escribe YYYY-MM-DD, o null si la fecha está vacía.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// rawJSONText devuelve el texto de un valor JSON escalar, sin comillas. null -> "".
func rawJSONText(b []byte) string {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return ""
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ""
		}
		return s
	}
	return string(b)
}

// ServiceLineDTO línea de servicio del formulario.
type ServiceLineDTO struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name"`
	Quantity  Quantity `json:"quantity" validate:"min=0"`
	UnitPrice Amount   `json:"unit_price"`
}

// InvoiceInputDTO datos digitados de una factura. Se usa en borrador, vista previa y emisión.
type InvoiceInputDTO struct {
	RoomID       string `json:"room_id" validate:"required"`
	RoomNumber   string `json:"room_number"`
	BuildingCode string `json:"building_code"`
	TenantName   string `json:"tenant_name"`
	ContractCode string `json:"contract_code"`
	RoomPrice    Amount `json:"room_price"`

	FromDate Date `json:"from_date" validate:"required"`
	ToDate   Date `json:"to_date" validate:"required"`

	ElectricityPrevious Amount `json:"electricity_previous"`
	ElectricityCurrent  Amount `json:"electricity_current"`
	ElectricityRate     Amount `json:"electricity_rate"`

	WaterCalculationMethod string   `json:"water_calculation_method" validate:"required,oneof=meter people"`
	WaterPrevious          Amount   `json:"water_previous"`
	WaterCurrent           Amount   `json:"water_current"`
	NumberOfPeople         Quantity `json:"number_of_people"`
	WaterRate              Amount   `json:"water_rate"`

	Services []ServiceLineDTO `json:"services"`
	Notes    string           `json:"notes"`
}

// ToInput convierte al snapshot del motor de cálculo.
func (d InvoiceInputDTO) ToInput() billing.Input {
	lines := make([]billing.ServiceLine, len(d.Services))
	for i, s := range d.Services {
		lines[i] = billing.ServiceLine{
			ID:        s.ID,
			Name:      s.Name,
			Quantity:  int(s.Quantity),
			UnitPrice: s.UnitPrice.Decimal,
		}
	}
	return billing.Input{
		Room: billing.RoomInfo{
			RoomID:       strings.TrimSpace(d.RoomID),
			RoomNumber:   d.RoomNumber,
			BuildingCode: d.BuildingCode,
			TenantName:   d.TenantName,
			ContractCode: d.ContractCode,
			MonthlyPrice: d.RoomPrice.Decimal,
		},
		Period: billing.Period{From: d.FromDate.Time, To: d.ToDate.Time},
		Electricity: billing.ElectricityReading{
			Previous: d.ElectricityPrevious.Decimal,
			Current:  d.ElectricityCurrent.Decimal,
			Rate:     d.ElectricityRate.Decimal,
		},
		Water: billing.WaterReading{
			Method:   billing.WaterMethod(d.WaterCalculationMethod),
			Previous: d.WaterPrevious.Decimal,
			Current:  d.WaterCurrent.Decimal,
			People:   int(d.NumberOfPeople),
			Rate:     d.WaterRate.Decimal,
		},
		Services: lines,
		Notes:    d.Notes,
	}
}

// InputToDTO convierte un snapshot del motor a DTO.
func InputToDTO(in billing.Input) InvoiceInputDTO {
	services := make([]ServiceLineDTO, len(in.Services))
	for i, s := range in.Services {
		services[i] = ServiceLineDTO{
			ID:        s.ID,
			Name:      s.Name,
			Quantity:  Quantity(s.Quantity),
			UnitPrice: NewAmount(s.UnitPrice),
		}
	}
	return InvoiceInputDTO{
		RoomID:                 in.Room.RoomID,
		RoomNumber:             in.Room.RoomNumber,
		BuildingCode:           in.Room.BuildingCode,
		TenantName:             in.Room.TenantName,
		ContractCode:           in.Room.ContractCode,
		RoomPrice:              NewAmount(in.Room.MonthlyPrice),
		FromDate:               NewDate(in.Period.From),
		ToDate:                 NewDate(in.Period.To),
		ElectricityPrevious:    NewAmount(in.Electricity.Previous),
		ElectricityCurrent:     NewAmount(in.Electricity.Current),
		ElectricityRate:        NewAmount(in.Electricity.Rate),
		WaterCalculationMethod: string(in.Water.Method),
		WaterPrevious:          NewAmount(in.Water.Previous),
		WaterCurrent:           NewAmount(in.Water.Current),
		NumberOfPeople:         Quantity(in.Water.People),
		WaterRate:              NewAmount(in.Water.Rate),
		Services:               services,
		Notes:                  in.Notes,
	}
}

// ServiceChargeDTO línea de servicio con su total.
type ServiceChargeDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Billable  bool            `json:"billable"` // cantidad > 0, se imprime en el PDF
}

// InvoiceComputationDTO valores derivados de una factura.
type InvoiceComputationDTO struct {
	NumberOfDays     int                `json:"number_of_days"`
	ElectricityUsage decimal.Decimal    `json:"electricity_usage"`
	ElectricityTotal decimal.Decimal    `json:"electricity_total"`
	WaterUsage       decimal.Decimal    `json:"water_usage"`
	WaterTotal       decimal.Decimal    `json:"water_total"`
	DailyRate        decimal.Decimal    `json:"daily_rate"`
	RoomFee          decimal.Decimal    `json:"room_fee"`
	Services         []ServiceChargeDTO `json:"services"`
	GrandTotal       decimal.Decimal    `json:"grand_total"`
}

// OutputToDTO convierte el resultado del motor a DTO.
func OutputToDTO(out billing.Output) InvoiceComputationDTO {
	services := make([]ServiceChargeDTO, len(out.Services))
	for i, s := range out.Services {
		services[i] = ServiceChargeDTO{
			ID:        s.ID,
			Name:      s.Name,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			Total:     s.Amount,
			Billable:  s.Quantity > 0,
		}
	}
	return InvoiceComputationDTO{
		NumberOfDays:     out.NumberOfDays,
		ElectricityUsage: out.Electricity.Usage,
		ElectricityTotal: out.Electricity.Total,
		WaterUsage:       out.Water.Usage,
		WaterTotal:       out.Water.Total,
		DailyRate:        billing.DailyRate(out.Input.Room.MonthlyPrice).Round(0),
		RoomFee:          out.RoomFee,
		Services:         services,
		GrandTotal:       out.GrandTotal,
	}
}

// DraftResponse borrador con sus valores derivados (POST /api/invoices/draft y /preview).
type DraftResponse struct {
	Input  InvoiceInputDTO       `json:"input"`
	Output InvoiceComputationDTO `json:"output"`
}

// NewDraftRequest entrada para pedir un borrador con valores por defecto.
type NewDraftRequest struct {
	RoomID string `json:"room_id"` // opcional
}

// InvoiceResponse factura emitida.
type InvoiceResponse struct {
	ID       string                `json:"id"`
	Number   string                `json:"number"`
	IssuedBy string                `json:"issued_by"`
	IssuedAt time.Time             `json:"issued_at"`
	Input    InvoiceInputDTO       `json:"input"`
	Output   InvoiceComputationDTO `json:"output"`
}

// InvoiceSummaryDTO fila del listado de facturas.
type InvoiceSummaryDTO struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	RoomID       string          `json:"room_id"`
	RoomNumber   string          `json:"room_number"`
	ContractCode string          `json:"contract_code"`
	TenantName   string          `json:"tenant_name"`
	FromDate     Date            `json:"from_date"`
	ToDate       Date            `json:"to_date"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	IssuedAt     time.Time       `json:"issued_at"`
}
