package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomInfo datos de la habitación y del contrato vigente que se facturan.
type RoomInfo struct {
	RoomID       string
	RoomNumber   string
	BuildingCode string
	TenantName   string
	ContractCode string
	MonthlyPrice decimal.Decimal
}

// Period período facturado (ambas fechas incluidas).
type Period struct {
	From time.Time
	To   time.Time
}

// ElectricityReading lecturas del medidor de luz y tarifa por kWh.
type ElectricityReading struct {
	Previous decimal.Decimal
	Current  decimal.Decimal
	Rate     decimal.Decimal
}

// WaterReading datos del agua. Previous/Current solo aplican por medidor; People solo por personas.
type WaterReading struct {
	Method   WaterMethod
	Previous decimal.Decimal
	Current  decimal.Decimal
	People   int
	Rate     decimal.Decimal
}

// ServiceLine servicio adicional (wifi, lavandería, parqueadero...).
// El total nunca se guarda aparte: siempre es Quantity * UnitPrice.
type ServiceLine struct {
	ID        string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total cantidad * precio unitario.
func (l ServiceLine) Total() decimal.Decimal {
	return ServiceLineTotal(l.Quantity, l.UnitPrice)
}

// Input snapshot de los datos que digita el operador.
type Input struct {
	Room        RoomInfo
	Period      Period
	Electricity ElectricityReading
	Water       WaterReading
	Services    []ServiceLine
	Notes       string
}

// ServiceCharge línea de servicio con su total ya calculado.
type ServiceCharge struct {
	ServiceLine
	Amount decimal.Decimal
}

// Output resultado del cálculo: el input de origen más todos los campos derivados.
type Output struct {
	Input        Input
	NumberOfDays int
	Electricity  Usage
	Water        Usage
	Services     []ServiceCharge // mismo orden que Input.Services
	RoomFee      decimal.Decimal
	GrandTotal   decimal.Decimal
}

// BillableServices líneas con cantidad > 0; las de cantidad cero no se imprimen
// aunque sigan guardadas en la factura.
func (o Output) BillableServices() []ServiceCharge {
	out := make([]ServiceCharge, 0, len(o.Services))
	for _, s := range o.Services {
		if s.Quantity > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Derive calcula todos los campos derivados a partir del input.
// Es determinista: el mismo input produce siempre el mismo output.
func Derive(in Input) Output {
	in.Services = cloneLines(in.Services)

	days := NumberOfDays(in.Period.From, in.Period.To)
	elec := ComputeElectricity(in.Electricity.Previous, in.Electricity.Current, in.Electricity.Rate)
	water := ComputeWater(in.Water.Method, in.Water.Previous, in.Water.Current, in.Water.People, in.Water.Rate)

	charges := make([]ServiceCharge, len(in.Services))
	for i, l := range in.Services {
		charges[i] = ServiceCharge{ServiceLine: l, Amount: l.Total()}
	}

	roomFee := ComputeRoomFee(in.Room.MonthlyPrice, days)

	return Output{
		Input:        in,
		NumberOfDays: days,
		Electricity:  elec,
		Water:        water,
		Services:     charges,
		RoomFee:      roomFee,
		GrandTotal:   ComputeGrandTotal(roomFee, elec.Total, water.Total, in.Services),
	}
}

func cloneLines(lines []ServiceLine) []ServiceLine {
	if lines == nil {
		return nil
	}
	out := make([]ServiceLine, len(lines))
	copy(out, lines)
	return out
}
