package billing_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/pkg/logger"
)

func exampleRequest() dto.InvoiceInputDTO {
	return dto.InvoiceInputDTO{
		RoomID: "room-1",
		// el cliente manda datos viejos; el servidor los reemplaza con el lookup
		TenantName:             "Otro Inquilino",
		RoomPrice:              dto.NewAmount(dec(1)),
		FromDate:               dto.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		ToDate:                 dto.NewDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		ElectricityPrevious:    dto.NewAmount(dec(100)),
		ElectricityCurrent:     dto.NewAmount(dec(150)),
		ElectricityRate:        dto.NewAmount(dec(3500)),
		WaterCalculationMethod: "people",
		NumberOfPeople:         2,
		WaterRate:              dto.NewAmount(dec(15000)),
		Services: []dto.ServiceLineDTO{
			{ID: "service-1", Name: "WiFi", Quantity: 1, UnitPrice: dto.NewAmount(dec(100000))},
			{ID: "service-2", Name: "Laundry", Quantity: 0, UnitPrice: dto.NewAmount(dec(50000))},
		},
	}
}

type invoiceFixture struct {
	uc        *appbilling.CreateInvoiceUseCase
	repo      *fakeInvoiceRepo
	publisher *fakePublisher
}

func newInvoiceFixture() invoiceFixture {
	repo := newFakeInvoiceRepo()
	pub := &fakePublisher{}
	uc := appbilling.NewCreateInvoiceUseCase(&fakeTxRunner{repo: repo}, testLookup(), repo, pub, logger.Nop())
	return invoiceFixture{uc: uc, repo: repo, publisher: pub}
}

func TestCreateInvoice_EmiteYGuarda(t *testing.T) {
	f := newInvoiceFixture()

	resp, err := f.uc.CreateInvoice(context.Background(), "user-1", exampleRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Number, "INV-CTR-001-"), resp.Number)
	assert.Equal(t, appbilling.InvoiceNumber("CTR-001", resp.IssuedAt), resp.Number)
	assert.Equal(t, "Nguyen Van A", resp.Input.TenantName)
	assert.Equal(t, "CTR-001", resp.Input.ContractCode)
	assert.Equal(t, "1805000", resp.Output.GrandTotal.String())
	assert.Equal(t, "1500000", resp.Output.RoomFee.String())
	assert.Len(t, resp.Output.Services, 2)

	stored, err := f.repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Lines, 2, "las líneas en cero también se guardan")
	assert.Equal(t, "user-1", stored.IssuedBy)
	assert.True(t, stored.GrandTotal.Equal(dec(1805000)))

	require.Len(t, f.publisher.events, 1)
	evt := f.publisher.events[0]
	assert.Equal(t, appbilling.EventInvoiceIssued, evt.Type)
	assert.Equal(t, resp.ID, evt.InvoiceID)
	assert.Equal(t, "2024-03-01", evt.FromDate)
	assert.True(t, evt.GrandTotal.Equal(dec(1805000)))
}

func TestCreateInvoice_ValidacionBloquea(t *testing.T) {
	f := newInvoiceFixture()
	req := exampleRequest()
	req.RoomID = ""

	_, err := f.uc.CreateInvoice(context.Background(), "user-1", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr engine.ValidationErrors
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Room selection is required", verr["room_id"])
	assert.Empty(t, f.repo.invoices)
	assert.Empty(t, f.publisher.events)
}

func TestCreateInvoice_ErroresDeLookup(t *testing.T) {
	f := newInvoiceFixture()

	req := exampleRequest()
	req.RoomID = "room-404"
	_, err := f.uc.CreateInvoice(context.Background(), "user-1", req)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	req.RoomID = "room-9"
	_, err = f.uc.CreateInvoice(context.Background(), "user-1", req)
	assert.True(t, errors.Is(err, domain.ErrNoActiveContract))
}

func TestCreateInvoice_DuplicadoMismoDia(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.uc.CreateInvoice(context.Background(), "user-1", exampleRequest())
	require.NoError(t, err)
	_, err = f.uc.CreateInvoice(context.Background(), "user-1", exampleRequest())
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Len(t, f.repo.invoices, 1)
}

func TestCreateInvoice_FallaDBHaceRollback(t *testing.T) {
	f := newInvoiceFixture()
	f.repo.failCreate = errors.New("connection reset")

	_, err := f.uc.CreateInvoice(context.Background(), "user-1", exampleRequest())
	require.Error(t, err)
	assert.Empty(t, f.repo.invoices)
	assert.Empty(t, f.publisher.events)
}

func TestCreateInvoice_PublicacionFallidaNoBloquea(t *testing.T) {
	f := newInvoiceFixture()
	f.publisher.err = errors.New("broker caído")

	resp, err := f.uc.CreateInvoice(context.Background(), "user-1", exampleRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateInvoice_BrokerSinRespuestaNoBloquea(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := appbilling.NewCreateInvoiceUseCase(&fakeTxRunner{repo: repo}, testLookup(), repo, stuckPublisher{}, logger.Nop()).
		WithPublishTimeout(50 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := uc.CreateInvoice(context.Background(), "user-1", exampleRequest())
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Len(t, repo.invoices, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("CreateInvoice quedó esperando al broker")
	}
}

func TestGetAndListInvoices(t *testing.T) {
	f := newInvoiceFixture()
	created, err := f.uc.CreateInvoice(context.Background(), "user-1", exampleRequest())
	require.NoError(t, err)

	got, err := f.uc.GetInvoice(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, got.Number)
	assert.Equal(t, created.Output.GrandTotal.String(), got.Output.GrandTotal.String())

	_, err = f.uc.GetInvoice(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := f.uc.ListInvoices(context.Background(), "room-1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
	assert.Equal(t, "CTR-001", list.Items[0].ContractCode)

	list, err = f.uc.ListInvoices(context.Background(), "room-2", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
