package billing_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/domain"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

type fakeLookup struct {
	rooms map[string]*appbilling.RoomDetails
}

func (f *fakeLookup) LookupRoom(_ context.Context, roomID string) (*appbilling.RoomDetails, error) {
	d, ok := f.rooms[roomID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if d.ContractCode == "" {
		return nil, domain.ErrNoActiveContract
	}
	c := *d
	return &c, nil
}

type fakeCatalog struct {
	services []*entity.Service
	err      error
}

func (f *fakeCatalog) ListServices(context.Context) ([]*entity.Service, error) {
	return f.services, f.err
}

// fakeInvoiceRepo guarda en memoria; failCreate simula un error de DB.
type fakeInvoiceRepo struct {
	mu         sync.Mutex
	invoices   map[string]*entity.Invoice
	failCreate error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[string]*entity.Invoice{}}
}

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.invoices {
		if existing.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	c := *inv
	c.Lines = nil
	r.invoices[inv.ID] = &c
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(_ context.Context, line *entity.InvoiceServiceLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[line.InvoiceID]
	if !ok {
		return errors.New("invoice not found")
	}
	l := *line
	inv.Lines = append(inv.Lines, &l)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *fakeInvoiceRepo) GetLatestByRoom(ctx context.Context, roomID string) (*entity.Invoice, error) {
	list, _ := r.List(ctx, roomID, 1, 0)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, roomID string, limit, offset int) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Invoice
	for _, inv := range r.invoices {
		if roomID == "" || inv.RoomID == roomID {
			c := *inv
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ToDate.After(list[j].ToDate) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// fakeTxRunner simula la transacción: si fn falla se descartan las escrituras.
type fakeTxRunner struct {
	repo *fakeInvoiceRepo
}

func (t *fakeTxRunner) RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	t.repo.mu.Lock()
	snapshot := make(map[string]*entity.Invoice, len(t.repo.invoices))
	for k, v := range t.repo.invoices {
		snapshot[k] = v
	}
	t.repo.mu.Unlock()

	if err := fn(t.repo); err != nil {
		t.repo.mu.Lock()
		t.repo.invoices = snapshot
		t.repo.mu.Unlock()
		return err
	}
	return nil
}

type fakePublisher struct {
	events []appbilling.InvoiceIssuedEvent
	err    error
}

func (p *fakePublisher) PublishInvoiceIssued(_ context.Context, evt appbilling.InvoiceIssuedEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

// stuckPublisher simula un broker que nunca confirma: solo vuelve cuando vence el contexto.
type stuckPublisher struct{}

func (stuckPublisher) PublishInvoiceIssued(ctx context.Context, _ appbilling.InvoiceIssuedEvent) error {
	<-ctx.Done()
	return ctx.Err()
}

type fakeGenerator struct {
	last engine.Output
	doc  appbilling.InvoiceDocument
}

func (g *fakeGenerator) GenerateInvoicePDF(_ context.Context, out engine.Output, doc appbilling.InvoiceDocument) ([]byte, error) {
	g.last = out
	g.doc = doc
	return []byte("%PDF-1.4 fake"), nil
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testLookup() *fakeLookup {
	return &fakeLookup{rooms: map[string]*appbilling.RoomDetails{
		"room-1": {
			RoomID:       "room-1",
			RoomNumber:   "101",
			BuildingCode: "BLDG-A",
			TenantName:   "Nguyen Van A",
			ContractCode: "CTR-001",
			Price:        dec(3000000),
		},
		"room-9": {RoomID: "room-9", RoomNumber: "909", BuildingCode: "BLDG-B", Price: dec(1000000)},
	}}
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{services: []*entity.Service{
		{ID: "service-1", Name: "WiFi", Price: dec(100000)},
		{ID: "service-2", Name: "Laundry", Price: dec(50000)},
	}}
}
