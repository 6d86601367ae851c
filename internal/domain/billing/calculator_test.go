package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Rental-api/internal/domain/billing"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertDec(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s: esperado %d, obtenido %s", msg, want, got.String())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNumberOfDays(t *testing.T) {
	cases := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"misma fecha", day(2024, 3, 1), day(2024, 3, 1), 1},
		{"quince días", day(2024, 3, 1), day(2024, 3, 15), 15},
		{"cruza mes", day(2024, 1, 31), day(2024, 2, 1), 2},
		{"año bisiesto", day(2024, 2, 1), day(2024, 2, 29), 29},
		{"rango invertido", day(2024, 3, 10), day(2024, 3, 9), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, billing.NumberOfDays(tc.from, tc.to))
		})
	}
}

func TestNumberOfDays_IgnoraHora(t *testing.T) {
	from := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 2, billing.NumberOfDays(from, to))

	loc := time.FixedZone("ICT", 7*3600)
	assert.Equal(t, 1, billing.NumberOfDays(
		time.Date(2024, 3, 1, 1, 0, 0, 0, loc),
		time.Date(2024, 3, 1, 22, 0, 0, 0, loc),
	))
}

func TestComputeElectricity(t *testing.T) {
	u := billing.ComputeElectricity(dec(100), dec(150), dec(3500))
	assertDec(t, 50, u.Usage, "consumo")
	assertDec(t, 175000, u.Total, "total")

	// medidor que retrocede: consumo y total en cero
	u = billing.ComputeElectricity(dec(150), dec(100), dec(3500))
	assert.True(t, u.Usage.IsZero())
	assert.True(t, u.Total.IsZero())
}

func TestComputeElectricity_ConsumoEsDiferencia(t *testing.T) {
	for prev := int64(0); prev <= 200; prev += 37 {
		for cur := prev; cur <= prev+120; cur += 29 {
			u := billing.ComputeElectricity(dec(prev), dec(cur), dec(2))
			assertDec(t, cur-prev, u.Usage, "consumo")
			assertDec(t, (cur-prev)*2, u.Total, "total")
		}
	}
}

func TestComputeWater(t *testing.T) {
	t.Run("por medidor", func(t *testing.T) {
		u := billing.ComputeWater(billing.WaterByMeter, dec(10), dec(18), 3, dec(15000))
		assertDec(t, 8, u.Usage, "consumo")
		assertDec(t, 120000, u.Total, "total")
	})
	t.Run("medidor retrocede", func(t *testing.T) {
		u := billing.ComputeWater(billing.WaterByMeter, dec(18), dec(10), 3, dec(15000))
		assert.True(t, u.Total.IsZero())
	})
	t.Run("por personas ignora lecturas", func(t *testing.T) {
		u := billing.ComputeWater(billing.WaterByPeople, dec(999), dec(0), 2, dec(15000))
		assertDec(t, 2, u.Usage, "consumo")
		assertDec(t, 30000, u.Total, "total")
	})
	t.Run("método desconocido", func(t *testing.T) {
		u := billing.ComputeWater(billing.WaterMethod("tank"), dec(1), dec(5), 2, dec(15000))
		assert.True(t, u.Usage.IsZero())
		assert.True(t, u.Total.IsZero())
	})
}

func TestComputeRoomFee(t *testing.T) {
	assertDec(t, 3000000, billing.ComputeRoomFee(dec(3000000), 30), "mes completo")
	assertDec(t, 1500000, billing.ComputeRoomFee(dec(3000000), 15), "medio mes")
	assertDec(t, 3100000, billing.ComputeRoomFee(dec(3000000), 31), "mes de 31 días")
	assert.True(t, billing.ComputeRoomFee(dec(3000000), 0).IsZero())
}

func TestComputeGrandTotal_IncluyeLineasEnCero(t *testing.T) {
	lines := []billing.ServiceLine{
		{ID: "service-1", Quantity: 1, UnitPrice: dec(100000)},
		{ID: "service-2", Quantity: 0, UnitPrice: dec(50000)},
	}
	total := billing.ComputeGrandTotal(dec(1500000), dec(175000), dec(30000), lines)
	assertDec(t, 1805000, total, "total")
}

func TestComputeGrandTotal_OrdenNoImporta(t *testing.T) {
	lines := []billing.ServiceLine{
		{ID: "a", Quantity: 1, UnitPrice: dec(100000)},
		{ID: "b", Quantity: 2, UnitPrice: dec(50000)},
		{ID: "c", Quantity: 3, UnitPrice: dec(200000)},
	}
	want := billing.ComputeGrandTotal(dec(10), dec(20), dec(30), lines)

	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, p := range perms {
		shuffled := []billing.ServiceLine{lines[p[0]], lines[p[1]], lines[p[2]]}
		got := billing.ComputeGrandTotal(dec(10), dec(20), dec(30), shuffled)
		assert.True(t, want.Equal(got), "permutación %v", p)
	}
}

func TestDerive_EjemploCompleto(t *testing.T) {
	in := billing.Input{
		Room: billing.RoomInfo{RoomID: "room-1", ContractCode: "CTR-001", MonthlyPrice: dec(3000000)},
		Period: billing.Period{
			From: day(2024, 3, 1),
			To:   day(2024, 3, 15),
		},
		Electricity: billing.ElectricityReading{Previous: dec(100), Current: dec(150), Rate: dec(3500)},
		Water: billing.WaterReading{
			Method: billing.WaterByPeople,
			People: 2,
			Rate:   dec(15000),
		},
		Services: []billing.ServiceLine{
			{ID: "service-1", Name: "WiFi", Quantity: 1, UnitPrice: dec(100000)},
			{ID: "service-2", Name: "Laundry", Quantity: 0, UnitPrice: dec(50000)},
		},
	}

	out := billing.Derive(in)

	assert.Equal(t, 15, out.NumberOfDays)
	assertDec(t, 1500000, out.RoomFee, "canon")
	assertDec(t, 175000, out.Electricity.Total, "luz")
	assertDec(t, 30000, out.Water.Total, "agua")
	assertDec(t, 1805000, out.GrandTotal, "total")

	assert.Len(t, out.Services, 2, "las líneas en cero se conservan")
	billable := out.BillableServices()
	if assert.Len(t, billable, 1) {
		assert.Equal(t, "service-1", billable[0].ID)
		assertDec(t, 100000, billable[0].Amount, "wifi")
	}
}

func TestDerive_Idempotente(t *testing.T) {
	in := billing.Input{
		Room:        billing.RoomInfo{MonthlyPrice: dec(4500000)},
		Period:      billing.Period{From: day(2024, 5, 3), To: day(2024, 6, 2)},
		Electricity: billing.ElectricityReading{Previous: dec(10), Current: dec(95), Rate: dec(3500)},
		Water:       billing.WaterReading{Method: billing.WaterByMeter, Previous: dec(3), Current: dec(9), Rate: dec(15000)},
		Services:    []billing.ServiceLine{{ID: "x", Quantity: 2, UnitPrice: dec(50000)}},
	}
	a := billing.Derive(in)
	b := billing.Derive(in)
	assert.Equal(t, a, b)
}

func TestDerive_NoComparteServicios(t *testing.T) {
	lines := []billing.ServiceLine{{ID: "x", Quantity: 1, UnitPrice: dec(100)}}
	out := billing.Derive(billing.Input{Services: lines})
	lines[0].Quantity = 50

	assert.Equal(t, 1, out.Input.Services[0].Quantity)
	assertDec(t, 100, out.Services[0].Amount, "total de línea")
}
