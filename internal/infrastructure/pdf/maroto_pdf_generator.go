// Package pdf implementa la representación impresa de la factura de arriendo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: RENTAL INVOICE          │  Invoice # + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ARRENDATARIO / HABITACIÓN: Tenant, Contract, Building, Room│
//	│  PERÍODO: From / To / Number of Days                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Quantity | Rate | Amount                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS (opcional)                                           │
//	│  GRAND TOTAL                                                │
//	│  FOOTER                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const longDate = "January 02, 2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes. Solo imprime valores ya derivados.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(ctx context.Context, out engine.Output, doc billing.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rental Invoice "+doc.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tenantRows(out.Input.Room)...)
	m.AddRows(periodRows(out)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Charges"))
	m.AddRows(tableHeaderRow())
	m.AddRows(chargeRows(out)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if out.Input.Notes != "" {
		m.AddRows(notesRows(out.Input.Notes)...)
	}
	m.AddRows(totalRow(out))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows()...)

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc billing.InvoiceDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("RENTAL INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New("Invoice #"+doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Date: "+doc.IssuedAt.Format(longDate), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func labelValue(label, value string) []core.Component {
	return []core.Component{
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
		text.New(value, props.Text{Size: 8, Top: 1, Left: 28}),
	}
}

func tenantRows(room engine.RoomInfo) []core.Row {
	return []core.Row{
		sectionTitle("Tenant & Room Information"),
		row.New(5).Add(
			col.New(6).Add(labelValue("Tenant Name:", room.TenantName)...),
			col.New(6).Add(labelValue("Building Code:", room.BuildingCode)...),
		),
		row.New(5).Add(
			col.New(6).Add(labelValue("Contract Code:", room.ContractCode)...),
			col.New(6).Add(labelValue("Room Number:", room.RoomNumber)...),
		),
	}
}

func periodRows(out engine.Output) []core.Row {
	p := out.Input.Period
	return []core.Row{
		sectionTitle("Invoice Period"),
		row.New(5).Add(
			col.New(4).Add(labelValue("From Date:", p.From.Format(longDate))...),
			col.New(4).Add(labelValue("To Date:", p.To.Format(longDate))...),
			col.New(4).Add(labelValue("Number of Days:", fmt.Sprint(out.NumberOfDays))...),
		),
	}
}

// tableHeaderRow: cabecera de la tabla de cargos con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 5, align.Left),
		h("Quantity", 2, align.Center),
		h("Rate", 2, align.Right),
		h("Amount", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func chargeRow(item, qty, rate, amount string) core.Row {
	return row.New(7).Add(
		col.New(5).Add(text.New(item, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(rate, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// chargeRows: habitación, luz, agua y los servicios con cantidad > 0.
func chargeRows(out engine.Output) []core.Row {
	in := out.Input
	rows := []core.Row{
		chargeRow("Room Fee",
			fmt.Sprintf("%d days", out.NumberOfDays),
			money.Number(engine.DailyRate(in.Room.MonthlyPrice).Round(0))+" VND/day",
			money.VND(out.RoomFee.Round(0)),
		),
		chargeRow("Electricity",
			money.Number(out.Electricity.Usage)+" kWh",
			money.Number(in.Electricity.Rate)+" VND/kWh",
			money.VND(out.Electricity.Total),
		),
	}

	if in.Water.Method == engine.WaterByPeople {
		rows = append(rows, chargeRow("Water (by people)",
			fmt.Sprintf("%d people", in.Water.People),
			money.Number(in.Water.Rate)+" VND/person",
			money.VND(out.Water.Total),
		))
	} else {
		rows = append(rows, chargeRow("Water (by meter)",
			money.Number(out.Water.Usage)+" m³",
			money.Number(in.Water.Rate)+" VND/m³",
			money.VND(out.Water.Total),
		))
	}

	for _, s := range out.BillableServices() {
		rows = append(rows, chargeRow(s.Name,
			fmt.Sprint(s.Quantity),
			money.VND(s.UnitPrice),
			money.VND(s.Amount),
		))
	}
	return rows
}

func notesRows(notes string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Notes:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}

// totalRow: el gran total se imprime con el valor exacto, sin redondear.
func totalRow(out engine.Output) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("GRAND TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New(money.VND(out.GrandTotal), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

func footerRows() []core.Row {
	footer := func(s string) core.Row {
		return row.New(5).Add(col.New(12).Add(
			text.New(s, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
		))
	}
	return []core.Row{
		footer("Thank you for your business!"),
		footer("Payment due within 7 days of invoice date."),
	}
}
