package billing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Rental-api/internal/domain"
)

// ValidationErrors mensajes por campo (clave = nombre del campo en el formulario).
// Envuelve domain.ErrInvalidInput para que los handlers puedan usar errors.Is.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidInput, strings.Join(parts, "; "))
}

func (v ValidationErrors) Unwrap() error { return domain.ErrInvalidInput }

// Validate revisa los campos obligatorios antes de emitir la factura.
// No valida consumos negativos (el motor los lleva a cero) ni el número de personas.
func Validate(in Input) error {
	errs := ValidationErrors{}

	if strings.TrimSpace(in.Room.RoomID) == "" {
		errs["room_id"] = "Room selection is required"
	}
	if in.Period.From.IsZero() {
		errs["from_date"] = "From date is required"
	}
	if in.Period.To.IsZero() {
		errs["to_date"] = "To date is required"
	}
	if !in.Period.From.IsZero() && !in.Period.To.IsZero() && civilDate(in.Period.To).Before(civilDate(in.Period.From)) {
		errs["to_date"] = "To date must be on or after from date"
	}
	if !in.Water.Method.Valid() {
		errs["water_calculation_method"] = "Water calculation method must be meter or people"
	}
	for i, l := range in.Services {
		if l.Quantity < 0 {
			errs[fmt.Sprintf("services.%d.quantity", i)] = "Quantity must be zero or greater"
		}
		if l.UnitPrice.IsNegative() {
			errs[fmt.Sprintf("services.%d.unit_price", i)] = "Unit price must be zero or greater"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
