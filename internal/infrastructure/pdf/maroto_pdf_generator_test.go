package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/internal/infrastructure/pdf"
)

func sampleOutput(method engine.WaterMethod, notes string) engine.Output {
	return engine.Derive(engine.Input{
		Room: engine.RoomInfo{
			RoomID: "room-1", RoomNumber: "101", BuildingCode: "BLDG-A",
			TenantName: "Nguyen Van A", ContractCode: "CTR-001",
			MonthlyPrice: decimal.NewFromInt(3000000),
		},
		Period: engine.Period{
			From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC),
		},
		Electricity: engine.ElectricityReading{
			Previous: decimal.NewFromInt(100), Current: decimal.NewFromInt(150), Rate: decimal.NewFromInt(3500),
		},
		Water: engine.WaterReading{
			Method: method, Previous: decimal.NewFromInt(10), Current: decimal.NewFromInt(15),
			People: 2, Rate: decimal.NewFromInt(15000),
		},
		Services: []engine.ServiceLine{
			{ID: "service-1", Name: "WiFi", Quantity: 1, UnitPrice: decimal.NewFromInt(100000)},
			{ID: "service-2", Name: "Laundry", Quantity: 0, UnitPrice: decimal.NewFromInt(50000)},
		},
		Notes: notes,
	})
}

func TestMarotoPDFGenerator_GeneraPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	doc := billing.InvoiceDocument{Number: "INV-CTR-001-20240331", IssuedAt: time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)}

	for _, tc := range []struct {
		name   string
		method engine.WaterMethod
		notes  string
	}{
		{"por medidor con notas", engine.WaterByMeter, "Pago en efectivo"},
		{"por personas sin notas", engine.WaterByPeople, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b, err := g.GenerateInvoicePDF(context.Background(), sampleOutput(tc.method, tc.notes), doc)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
		})
	}
}

func TestMarotoPDFGenerator_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewMarotoPDFGenerator().GenerateInvoicePDF(ctx, sampleOutput(engine.WaterByMeter, ""), billing.InvoiceDocument{})
	assert.ErrorIs(t, err, context.Canceled)
}
