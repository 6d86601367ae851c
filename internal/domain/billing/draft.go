package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto de un borrador nuevo (VND).
var (
	DefaultElectricityRate = decimal.NewFromInt(3500)
	DefaultWaterRate       = decimal.NewFromInt(15000)
)

// DefaultPeople ocupantes por defecto cuando el agua se cobra por personas.
const DefaultPeople = 1

// Draft borrador inmutable de factura. Cada setter devuelve un borrador nuevo con los
// campos derivados ya recalculados, así nunca queda un total desactualizado.
type Draft struct {
	in  Input
	out Output
}

// NewDraft crea el borrador con valores por defecto: período de hoy a hoy + 1 mes,
// tarifas por defecto, agua por medidor y una línea por cada servicio del catálogo con cantidad 0.
func NewDraft(now time.Time, catalog []ServiceLine) Draft {
	lines := make([]ServiceLine, len(catalog))
	for i, s := range catalog {
		s.Quantity = 0
		lines[i] = s
	}
	from := civilDate(now)
	return newDraft(Input{
		Period: Period{From: from, To: from.AddDate(0, 1, 0)},
		Electricity: ElectricityReading{
			Previous: decimal.Zero,
			Current:  decimal.Zero,
			Rate:     DefaultElectricityRate,
		},
		Water: WaterReading{
			Method:   WaterByMeter,
			Previous: decimal.Zero,
			Current:  decimal.Zero,
			People:   DefaultPeople,
			Rate:     DefaultWaterRate,
		},
		Services: lines,
	})
}

// DraftFromInput construye un borrador a partir de un input ya armado.
func DraftFromInput(in Input) Draft {
	in.Services = cloneLines(in.Services)
	return newDraft(in)
}

func newDraft(in Input) Draft {
	return Draft{in: in, out: Derive(in)}
}

// Input copia del input actual.
func (d Draft) Input() Input {
	in := d.in
	in.Services = cloneLines(in.Services)
	return in
}

// Output resultado calculado para el input actual.
func (d Draft) Output() Output {
	out := d.out
	out.Input.Services = cloneLines(out.Input.Services)
	out.Services = append([]ServiceCharge(nil), out.Services...)
	return out
}

// Recompute vuelve a derivar desde el input; debe coincidir con Output().
func (d Draft) Recompute() Output {
	return Derive(d.Input())
}

// WithRoom asigna habitación y contrato.
func (d Draft) WithRoom(room RoomInfo) Draft {
	in := d.Input()
	in.Room = room
	return newDraft(in)
}

// WithPeriod cambia las fechas del período.
func (d Draft) WithPeriod(from, to time.Time) Draft {
	in := d.Input()
	in.Period = Period{From: from, To: to}
	return newDraft(in)
}

// WithElectricity cambia lecturas y tarifa de luz.
func (d Draft) WithElectricity(r ElectricityReading) Draft {
	in := d.Input()
	in.Electricity = r
	return newDraft(in)
}

// WithWater cambia todos los datos del agua.
func (d Draft) WithWater(r WaterReading) Draft {
	in := d.Input()
	in.Water = r
	return newDraft(in)
}

// WithWaterMethod cambia solo el método de cobro del agua.
func (d Draft) WithWaterMethod(m WaterMethod) Draft {
	in := d.Input()
	in.Water.Method = m
	return newDraft(in)
}

// WithServiceQuantity cambia la cantidad de un servicio por ID. Si el ID no existe
// el borrador se devuelve sin cambios.
func (d Draft) WithServiceQuantity(serviceID string, quantity int) Draft {
	in := d.Input()
	for i := range in.Services {
		if in.Services[i].ID == serviceID {
			in.Services[i].Quantity = quantity
			return newDraft(in)
		}
	}
	return d
}

// WithServices reemplaza todas las líneas de servicio.
func (d Draft) WithServices(lines []ServiceLine) Draft {
	in := d.Input()
	in.Services = cloneLines(lines)
	return newDraft(in)
}

// WithNotes cambia las notas libres.
func (d Draft) WithNotes(notes string) Draft {
	in := d.Input()
	in.Notes = notes
	return newDraft(in)
}
