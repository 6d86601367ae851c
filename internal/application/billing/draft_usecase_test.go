package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

func TestNewDraft_SinHabitacion(t *testing.T) {
	uc := appbilling.NewDraftUseCase(testLookup(), testCatalog(), newFakeInvoiceRepo(), appbilling.Rates{})

	resp, err := uc.NewDraft(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, resp.Input.RoomID)
	assert.Equal(t, "3500", resp.Input.ElectricityRate.String())
	assert.Equal(t, "15000", resp.Input.WaterRate.String())
	assert.Equal(t, "meter", resp.Input.WaterCalculationMethod)
	require.Len(t, resp.Input.Services, 2)
	assert.Equal(t, dto.Quantity(0), resp.Input.Services[0].Quantity)
	assert.Equal(t, "100000", resp.Input.Services[0].UnitPrice.String())
	assert.True(t, resp.Output.GrandTotal.IsZero())
}

func TestNewDraft_TarifasDeConfig(t *testing.T) {
	uc := appbilling.NewDraftUseCase(testLookup(), testCatalog(), nil, appbilling.Rates{Electricity: dec(4000)})

	resp, err := uc.NewDraft(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "4000", resp.Input.ElectricityRate.String())
	assert.Equal(t, "15000", resp.Input.WaterRate.String())
}

func TestNewDraft_ConHabitacionYFacturaPrevia(t *testing.T) {
	lookup := testLookup()
	lookup.rooms["room-1"].WaterRate = dec(20000)
	repo := newFakeInvoiceRepo()
	repo.invoices["old"] = &entity.Invoice{
		ID:                 "old",
		RoomID:             "room-1",
		ToDate:             time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		ElectricityCurrent: dec(1234),
		WaterMethod:        "meter",
		WaterCurrent:       dec(56),
	}
	uc := appbilling.NewDraftUseCase(lookup, testCatalog(), repo, appbilling.Rates{})

	resp, err := uc.NewDraft(context.Background(), "room-1")
	require.NoError(t, err)

	assert.Equal(t, "room-1", resp.Input.RoomID)
	assert.Equal(t, "Nguyen Van A", resp.Input.TenantName)
	assert.Equal(t, "CTR-001", resp.Input.ContractCode)
	assert.Equal(t, "3000000", resp.Input.RoomPrice.String())
	assert.Equal(t, "1234", resp.Input.ElectricityPrevious.String())
	assert.Equal(t, "56", resp.Input.WaterPrevious.String())
	assert.Equal(t, "20000", resp.Input.WaterRate.String())
	assert.True(t, resp.Output.RoomFee.IsPositive())
}

func TestNewDraft_Errores(t *testing.T) {
	uc := appbilling.NewDraftUseCase(testLookup(), testCatalog(), nil, appbilling.Rates{})
	_, err := uc.NewDraft(context.Background(), "room-404")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	broken := &fakeCatalog{err: errors.New("timeout")}
	uc = appbilling.NewDraftUseCase(testLookup(), broken, nil, appbilling.Rates{})
	_, err = uc.NewDraft(context.Background(), "")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	uc := appbilling.NewDraftUseCase(testLookup(), testCatalog(), nil, appbilling.Rates{})
	req := exampleRequest()
	req.RoomPrice = dto.NewAmount(dec(3000000))

	resp := uc.Preview(req)
	assert.Equal(t, 15, resp.Output.NumberOfDays)
	assert.Equal(t, "1805000", resp.Output.GrandTotal.String())
	assert.Equal(t, "100000", resp.Output.DailyRate.String())
	assert.True(t, resp.Output.Services[0].Billable)
	assert.False(t, resp.Output.Services[1].Billable)

	// sin validar: input incompleto igual calcula
	resp = uc.Preview(dto.InvoiceInputDTO{})
	assert.True(t, resp.Output.GrandTotal.IsZero())
}
