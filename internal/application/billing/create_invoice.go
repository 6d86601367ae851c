package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Rental-api/internal/application/dto"
	"github.com/jhoicas/Rental-api/internal/domain"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
	"github.com/jhoicas/Rental-api/pkg/logger"
)

// DefaultPublishTimeout tiempo máximo que la emisión espera al broker.
const DefaultPublishTimeout = 3 * time.Second

// CreateInvoiceUseCase emite facturas: valida, recalcula y guarda el snapshot inmutable.
type CreateInvoiceUseCase struct {
	txRunner       BillingTxRunner
	lookup         RoomLookup
	invoiceRepo    repository.InvoiceRepository
	publisher      InvoicePublisher
	publishTimeout time.Duration
	log            *logger.Logger
}

// NewCreateInvoiceUseCase construye el caso de uso. publisher puede ser nil.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	lookup RoomLookup,
	invoiceRepo repository.InvoiceRepository,
	publisher InvoicePublisher,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:       txRunner,
		lookup:         lookup,
		invoiceRepo:    invoiceRepo,
		publisher:      publisher,
		publishTimeout: DefaultPublishTimeout,
		log:            log,
	}
}

// WithPublishTimeout cambia la espera máxima del evento invoice.issued (d <= 0 no se aplica).
func (uc *CreateInvoiceUseCase) WithPublishTimeout(d time.Duration) *CreateInvoiceUseCase {
	if d > 0 {
		uc.publishTimeout = d
	}
	return uc
}

// CreateInvoice valida el input, toma habitación/contrato/precio del lookup (el servidor manda),
// deriva los totales y guarda cabecera y líneas en una sola transacción.
//
// Retorna:
//   - engine.ValidationErrors       si falta algún campo obligatorio (errors.Is ErrInvalidInput).
//   - domain.ErrNotFound            si la habitación no existe.
//   - domain.ErrNoActiveContract    si la habitación no tiene contrato vigente.
//   - domain.ErrDuplicate           si ya existe una factura con el mismo número.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, req dto.InvoiceInputDTO) (*dto.InvoiceResponse, error) {
	in := req.ToInput()
	if err := engine.Validate(in); err != nil {
		return nil, err
	}

	details, err := uc.lookup.LookupRoom(ctx, in.Room.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invoice: habitación %s: %w", in.Room.RoomID, err)
	}
	in.Room = details.RoomInfo()

	out := engine.Derive(in)
	now := time.Now()
	inv := newInvoiceEntity(out, InvoiceNumber(details.ContractCode, now), userID, now)

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, line := range inv.Lines {
			if err := invoiceRepo.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe la factura %s", domain.ErrDuplicate, inv.Number)
		}
		return nil, fmt.Errorf("invoice: guardar: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Str("room_id", inv.RoomID).
		Str("contract_code", inv.ContractCode).
		Str("grand_total", inv.GrandTotal.String()).
		Msg("factura emitida")

	uc.publishIssued(ctx, inv.ID, out, inv.Number, now)

	return &dto.InvoiceResponse{
		ID:       inv.ID,
		Number:   inv.Number,
		IssuedBy: userID,
		IssuedAt: now,
		Input:    dto.InputToDTO(out.Input),
		Output:   dto.OutputToDTO(out),
	}, nil
}

// publishIssued el evento es best effort: si falla o vence publishTimeout se registra y la
// factura queda emitida igual. El contexto de Fiber solo se cancela al apagar el servidor.
func (uc *CreateInvoiceUseCase) publishIssued(ctx context.Context, invoiceID string, out engine.Output, number string, at time.Time) {
	if uc.publisher == nil {
		return
	}
	evt := InvoiceIssuedEvent{
		Type:         EventInvoiceIssued,
		InvoiceID:    invoiceID,
		Number:       number,
		RoomID:       out.Input.Room.RoomID,
		ContractCode: out.Input.Room.ContractCode,
		TenantName:   out.Input.Room.TenantName,
		FromDate:     out.Input.Period.From.Format(dto.DateLayout),
		ToDate:       out.Input.Period.To.Format(dto.DateLayout),
		GrandTotal:   out.GrandTotal,
		IssuedAt:     at,
	}
	pubCtx, cancel := context.WithTimeout(ctx, uc.publishTimeout)
	defer cancel()
	if err := uc.publisher.PublishInvoiceIssued(pubCtx, evt); err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", invoiceID).Msg("no se pudo publicar invoice.issued")
	}
}

// GetInvoice devuelve una factura emitida.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice: obtener: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lista facturas, opcionalmente de una habitación.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, roomID string, page dto.PageRequest) (*dto.ListResponse[dto.InvoiceSummaryDTO], error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(ctx, roomID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("invoice: listar: %w", err)
	}
	items := make([]dto.InvoiceSummaryDTO, 0, len(list))
	for _, inv := range list {
		items = append(items, toInvoiceSummary(inv))
	}
	return &dto.ListResponse[dto.InvoiceSummaryDTO]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
