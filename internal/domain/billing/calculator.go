// Package billing contiene el motor de cálculo de la factura de arriendo:
// días facturados, consumo de luz y agua, prorrateo del canon, servicios y total.
//
// Todas las funciones son puras: no hacen I/O, no registran logs y no retornan error.
// El único "manejo de errores" interno es llevar a cero los consumos negativos.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// daysPerMonth es el mes comercial usado para prorratear el canon (no el mes calendario).
const daysPerMonth = 30

var decDaysPerMonth = decimal.NewFromInt(daysPerMonth)

// WaterMethod forma de cobrar el agua.
type WaterMethod string

const (
	WaterByMeter  WaterMethod = "meter"  // diferencia entre lecturas del medidor
	WaterByPeople WaterMethod = "people" // tarifa plana por ocupante
)

// Valid indica si el método es uno de los soportados.
func (m WaterMethod) Valid() bool {
	return m == WaterByMeter || m == WaterByPeople
}

// Usage consumo derivado y su valor.
type Usage struct {
	Usage decimal.Decimal
	Total decimal.Decimal
}

// NumberOfDays devuelve los días del período, incluyendo inicio y fin.
// Solo cuenta la fecha calendario; la hora se ignora.
// Si to es anterior a from el resultado es <= 0 (la validación lo rechaza antes de emitir).
func NumberOfDays(from, to time.Time) int {
	f := civilDate(from)
	t := civilDate(to)
	return int(t.Sub(f).Hours()/24) + 1
}

// civilDate normaliza a medianoche UTC conservando año/mes/día de la zona original.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeElectricity consumo = max(0, actual - anterior); total = consumo * tarifa.
func ComputeElectricity(previous, current, rate decimal.Decimal) Usage {
	usage := meterDelta(previous, current)
	return Usage{Usage: usage, Total: usage.Mul(rate)}
}

// ComputeWater calcula el agua según el método.
// Por medidor aplica el mismo recorte a cero que la luz; por personas el consumo es el
// número de ocupantes (sin validar signo). Un método desconocido no genera cobro.
func ComputeWater(method WaterMethod, previous, current decimal.Decimal, people int, rate decimal.Decimal) Usage {
	switch method {
	case WaterByMeter:
		usage := meterDelta(previous, current)
		return Usage{Usage: usage, Total: usage.Mul(rate)}
	case WaterByPeople:
		usage := decimal.NewFromInt(int64(people))
		return Usage{Usage: usage, Total: usage.Mul(rate)}
	default:
		return Usage{Usage: decimal.Zero, Total: decimal.Zero}
	}
}

// meterDelta diferencia entre lecturas; un retroceso del medidor se toma como cero.
func meterDelta(previous, current decimal.Decimal) decimal.Decimal {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return decimal.Zero
	}
	return delta
}

// ServiceLineTotal cantidad * precio unitario.
func ServiceLineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(unitPrice)
}

// ComputeRoomFee prorratea el canon mensual: (canon / 30) * días.
// Se multiplica antes de dividir para no perder precisión en la división decimal.
func ComputeRoomFee(monthlyPrice decimal.Decimal, numberOfDays int) decimal.Decimal {
	return monthlyPrice.Mul(decimal.NewFromInt(int64(numberOfDays))).Div(decDaysPerMonth)
}

// DailyRate canon por día (canon / 30), usado solo para mostrar en el documento.
func DailyRate(monthlyPrice decimal.Decimal) decimal.Decimal {
	return monthlyPrice.Div(decDaysPerMonth)
}

// ComputeGrandTotal suma canon prorrateado, luz, agua y todas las líneas de servicio,
// incluidas las de cantidad cero. El orden de las líneas no afecta el resultado.
func ComputeGrandTotal(roomFee, electricityTotal, waterTotal decimal.Decimal, lines []ServiceLine) decimal.Decimal {
	total := roomFee.Add(electricityTotal).Add(waterTotal)
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
