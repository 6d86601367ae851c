package billing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/billing"
)

func validInput() billing.Input {
	return billing.Input{
		Room:   billing.RoomInfo{RoomID: "room-1", MonthlyPrice: dec(3000000)},
		Period: billing.Period{From: day(2024, 3, 1), To: day(2024, 3, 31)},
		Water:  billing.WaterReading{Method: billing.WaterByMeter},
		Services: []billing.ServiceLine{
			{ID: "service-1", Quantity: 0, UnitPrice: dec(100000)},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, billing.Validate(validInput()))

	// consumos negativos no son error: el motor los lleva a cero
	in := validInput()
	in.Electricity = billing.ElectricityReading{Previous: dec(200), Current: dec(100)}
	assert.NoError(t, billing.Validate(in))

	// misma fecha de inicio y fin
	in = validInput()
	in.Period.To = in.Period.From
	assert.NoError(t, billing.Validate(in))
}

func TestValidate_SinHabitacion(t *testing.T) {
	in := validInput()
	in.Room.RoomID = "  "

	err := billing.Validate(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr billing.ValidationErrors
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Room selection is required", verr["room_id"])
	assert.Len(t, verr, 1)
}

func TestValidate_VariosCampos(t *testing.T) {
	in := validInput()
	in.Period.From = day(2024, 4, 1)
	in.Water.Method = "tank"
	in.Services = append(in.Services, billing.ServiceLine{ID: "service-2", Quantity: -1, UnitPrice: dec(-5)})

	var verr billing.ValidationErrors
	require.True(t, errors.As(billing.Validate(in), &verr))
	assert.Contains(t, verr, "to_date")
	assert.Contains(t, verr, "water_calculation_method")
	assert.Contains(t, verr, "services.1.quantity")
	assert.Contains(t, verr, "services.1.unit_price")
	assert.NotContains(t, verr, "services.0.quantity")
	assert.Contains(t, verr.Error(), "to_date")
}

func TestValidate_FechasObligatorias(t *testing.T) {
	in := validInput()
	in.Period = billing.Period{}

	var verr billing.ValidationErrors
	require.True(t, errors.As(billing.Validate(in), &verr))
	assert.Contains(t, verr, "from_date")
	assert.Contains(t, verr, "to_date")
}
