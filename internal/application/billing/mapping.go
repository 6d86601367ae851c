package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

// invoiceNumberLayout fecha del número de factura (yyyyMMdd).
const invoiceNumberLayout = "20060102"

// InvoiceNumber arma el número INV-<contrato>-<yyyyMMdd>.
func InvoiceNumber(contractCode string, at time.Time) string {
	return fmt.Sprintf("INV-%s-%s", contractCode, at.Format(invoiceNumberLayout))
}

// filenameReplacer quita separadores de ruta y caracteres que rompen Content-Disposition.
var filenameReplacer = strings.NewReplacer("/", "_", "\\", "_", "..", "_", "\"", "_", ":", "_", "\x00", "")

// PDFFilename nombre del archivo exportado; nunca contiene separadores de ruta.
func PDFFilename(contractCode string) string {
	code := strings.TrimSpace(filenameReplacer.Replace(contractCode))
	if code == "" {
		code = "unknown"
	}
	return fmt.Sprintf("invoice-%s.pdf", code)
}

// newInvoiceEntity construye la factura a persistir a partir del resultado del motor.
func newInvoiceEntity(out engine.Output, number, userID string, now time.Time) *entity.Invoice {
	in := out.Input
	inv := &entity.Invoice{
		ID:                  uuid.New().String(),
		Number:              number,
		RoomID:              in.Room.RoomID,
		ContractCode:        in.Room.ContractCode,
		RoomNumber:          in.Room.RoomNumber,
		BuildingCode:        in.Room.BuildingCode,
		TenantName:          in.Room.TenantName,
		MonthlyPrice:        in.Room.MonthlyPrice,
		FromDate:            in.Period.From,
		ToDate:              in.Period.To,
		ElectricityPrevious: in.Electricity.Previous,
		ElectricityCurrent:  in.Electricity.Current,
		ElectricityRate:     in.Electricity.Rate,
		WaterMethod:         string(in.Water.Method),
		WaterPrevious:       in.Water.Previous,
		WaterCurrent:        in.Water.Current,
		WaterPeople:         in.Water.People,
		WaterRate:           in.Water.Rate,
		Notes:               in.Notes,
		NumberOfDays:        out.NumberOfDays,
		ElectricityUsage:    out.Electricity.Usage,
		ElectricityTotal:    out.Electricity.Total,
		WaterUsage:          out.Water.Usage,
		WaterTotal:          out.Water.Total,
		RoomFee:             out.RoomFee,
		GrandTotal:          out.GrandTotal,
		IssuedBy:            userID,
		IssuedAt:            now,
		CreatedAt:           now,
	}
	for i, s := range out.Services {
		inv.Lines = append(inv.Lines, &entity.InvoiceServiceLine{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Position:  i,
			ServiceID: s.ID,
			Name:      s.Name,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			Total:     s.Amount,
		})
	}
	return inv
}

// InputFromInvoice reconstruye el snapshot de entrada guardado en la factura.
func InputFromInvoice(inv *entity.Invoice) engine.Input {
	lines := make([]engine.ServiceLine, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = engine.ServiceLine{
			ID:        l.ServiceID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return engine.Input{
		Room: engine.RoomInfo{
			RoomID:       inv.RoomID,
			RoomNumber:   inv.RoomNumber,
			BuildingCode: inv.BuildingCode,
			TenantName:   inv.TenantName,
			ContractCode: inv.ContractCode,
			MonthlyPrice: inv.MonthlyPrice,
		},
		Period: engine.Period{From: inv.FromDate, To: inv.ToDate},
		Electricity: engine.ElectricityReading{
			Previous: inv.ElectricityPrevious,
			Current:  inv.ElectricityCurrent,
			Rate:     inv.ElectricityRate,
		},
		Water: engine.WaterReading{
			Method:   engine.WaterMethod(inv.WaterMethod),
			Previous: inv.WaterPrevious,
			Current:  inv.WaterCurrent,
			People:   inv.WaterPeople,
			Rate:     inv.WaterRate,
		},
		Services: lines,
		Notes:    inv.Notes,
	}
}

// toInvoiceResponse re-deriva desde el input guardado para armar la respuesta.
func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	out := engine.Derive(InputFromInvoice(inv))
	return &dto.InvoiceResponse{
		ID:       inv.ID,
		Number:   inv.Number,
		IssuedBy: inv.IssuedBy,
		IssuedAt: inv.IssuedAt,
		Input:    dto.InputToDTO(out.Input),
		Output:   dto.OutputToDTO(out),
	}
}

func toInvoiceSummary(inv *entity.Invoice) dto.InvoiceSummaryDTO {
	return dto.InvoiceSummaryDTO{
		ID:           inv.ID,
		Number:       inv.Number,
		RoomID:       inv.RoomID,
		RoomNumber:   inv.RoomNumber,
		ContractCode: inv.ContractCode,
		TenantName:   inv.TenantName,
		FromDate:     dto.NewDate(inv.FromDate),
		ToDate:       dto.NewDate(inv.ToDate),
		GrandTotal:   inv.GrandTotal,
		IssuedAt:     inv.IssuedAt,
	}
}

// storedTotalsMatch compara los totales guardados con un re-cálculo.
func storedTotalsMatch(inv *entity.Invoice, out engine.Output) bool {
	return inv.NumberOfDays == out.NumberOfDays &&
		inv.RoomFee.Equal(out.RoomFee) &&
		inv.ElectricityTotal.Equal(out.Electricity.Total) &&
		inv.WaterTotal.Equal(out.Water.Total) &&
		inv.GrandTotal.Equal(out.GrandTotal)
}
