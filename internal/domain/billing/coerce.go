package billing

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericPrefix toma el número inicial de un texto ("12.5kWh" -> "12.5"), igual que un parseFloat laxo.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)`)

// Límites de lo que se acepta como número digitado. Fuera de ellos el valor se trata como
// mal digitado (0): un exponente enorme haría que cualquier suma reescale sin fin.
const maxExponent = 18

var (
	maxAmount   = decimal.New(1, 15) // 10^15 VND
	maxQuantity = decimal.NewFromInt(math.MaxInt32)
	minQuantity = decimal.NewFromInt(math.MinInt32)
)

// CoerceAmount convierte texto digitado a decimal. Lo que no se pueda leer, o quede fuera
// de ±10^15 o con más de 18 decimales, vale 0: un número mal digitado no bloquea el formulario.
func CoerceAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return bounded(d)
	}
	m := numericPrefix.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	if strings.HasPrefix(strings.TrimLeft(m, "+-"), ".") {
		m = strings.Replace(m, ".", "0.", 1)
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return bounded(d)
}

// bounded revisa el exponente antes de comparar: Cmp reescala y con 1e300000000 no termina.
func bounded(d decimal.Decimal) decimal.Decimal {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero
	}
	if d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero
	}
	return d
}

// CoerceQuantity igual que CoerceAmount pero trunca hacia cero a entero. Fuera del rango de
// int32 (columnas INTEGER) vale 0.
func CoerceQuantity(s string) int {
	d := CoerceAmount(s).Truncate(0)
	if d.GreaterThan(maxQuantity) || d.LessThan(minQuantity) {
		return 0
	}
	return int(d.IntPart())
}
