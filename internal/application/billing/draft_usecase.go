package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

// Rates tarifas globales por defecto (config). Cero = usar las del motor.
type Rates struct {
	Electricity decimal.Decimal
	Water       decimal.Decimal
}

// DraftUseCase arma borradores de factura y vistas previas. No persiste nada.
type DraftUseCase struct {
	lookup      RoomLookup
	catalog     ServiceCatalog
	invoiceRepo repository.InvoiceRepository
	rates       Rates
}

// NewDraftUseCase construye el caso de uso. invoiceRepo puede ser nil (sin lecturas previas).
func NewDraftUseCase(lookup RoomLookup, catalog ServiceCatalog, invoiceRepo repository.InvoiceRepository, rates Rates) *DraftUseCase {
	return &DraftUseCase{lookup: lookup, catalog: catalog, invoiceRepo: invoiceRepo, rates: rates}
}

// NewDraft devuelve un borrador con valores por defecto y una línea por servicio del catálogo.
// Si roomID no es vacío completa habitación/contrato, tarifas del edificio y las lecturas
// anteriores tomadas de la última factura de la habitación.
func (uc *DraftUseCase) NewDraft(ctx context.Context, roomID string) (*dto.DraftResponse, error) {
	services, err := uc.catalog.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("draft: catálogo de servicios: %w", err)
	}
	lines := make([]engine.ServiceLine, 0, len(services))
	for _, s := range services {
		lines = append(lines, engine.ServiceLine{ID: s.ID, Name: s.Name, UnitPrice: s.Price})
	}

	d := engine.NewDraft(time.Now(), lines)
	elec := d.Input().Electricity
	water := d.Input().Water
	if uc.rates.Electricity.IsPositive() {
		elec.Rate = uc.rates.Electricity
	}
	if uc.rates.Water.IsPositive() {
		water.Rate = uc.rates.Water
	}

	if roomID != "" {
		details, err := uc.lookup.LookupRoom(ctx, roomID)
		if err != nil {
			return nil, fmt.Errorf("draft: habitación %s: %w", roomID, err)
		}
		d = d.WithRoom(details.RoomInfo())
		if details.ElectricityRate.IsPositive() {
			elec.Rate = details.ElectricityRate
		}
		if details.WaterRate.IsPositive() {
			water.Rate = details.WaterRate
		}

		if uc.invoiceRepo != nil {
			last, err := uc.invoiceRepo.GetLatestByRoom(ctx, roomID)
			if err != nil {
				return nil, fmt.Errorf("draft: última factura: %w", err)
			}
			if last != nil {
				elec.Previous = last.ElectricityCurrent
				if last.WaterMethod == string(engine.WaterByMeter) {
					water.Previous = last.WaterCurrent
				}
			}
		}
	}

	d = d.WithElectricity(elec).WithWater(water)
	return draftResponse(d), nil
}

// Preview calcula los valores derivados de un input arbitrario, sin validar.
func (uc *DraftUseCase) Preview(in dto.InvoiceInputDTO) *dto.DraftResponse {
	return draftResponse(engine.DraftFromInput(in.ToInput()))
}

func draftResponse(d engine.Draft) *dto.DraftResponse {
	out := d.Output()
	return &dto.DraftResponse{
		Input:  dto.InputToDTO(out.Input),
		Output: dto.OutputToDTO(out),
	}
}
