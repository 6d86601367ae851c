// Package catalog adaptadores del lookup de habitaciones y del catálogo de servicios
// que no dependen de la base de datos: datos de ejemplo en memoria y un decorador con caché.
package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/domain"
	"github.com/jhoicas/Rental-api/internal/domain/entity"
)

var (
	_ billing.RoomLookup     = (*Memory)(nil)
	_ billing.ServiceCatalog = (*Memory)(nil)
)

type memRoom struct {
	id, number, buildingCode string
	price                    int64
}

type memContract struct {
	roomID, code, tenant string
}

var sampleRooms = []memRoom{
	{"room-1", "101", "BLDG-A", 3000000},
	{"room-2", "102", "BLDG-A", 3500000},
	{"room-3", "201", "BLDG-B", 4000000},
	{"room-4", "202", "BLDG-B", 4500000},
}

var sampleContracts = []memContract{
	{"room-1", "CTR-001", "Nguyen Van A"},
	{"room-2", "CTR-002", "Tran Thi B"},
	{"room-3", "CTR-003", "Le Van C"},
	{"room-4", "CTR-004", "Pham Thi D"},
}

var sampleServices = []entity.Service{
	{ID: "service-1", Name: "WiFi", Price: decimal.NewFromInt(100000), Description: "Internet connection"},
	{ID: "service-2", Name: "Laundry", Price: decimal.NewFromInt(50000), Description: "Laundry service per person"},
	{ID: "service-3", Name: "Motorbike Parking", Price: decimal.NewFromInt(100000), Description: "Parking for motorbikes"},
	{ID: "service-4", Name: "Bicycle Parking", Price: decimal.NewFromInt(50000), Description: "Parking for bicycles"},
	{ID: "service-5", Name: "Cleaning", Price: decimal.NewFromInt(200000), Description: "Room cleaning service"},
}

// Memory catálogo de ejemplo con latencia artificial, para demos y desarrollo sin DB.
// No revisa la vigencia del contrato: cualquier contrato de la habitación sirve.
type Memory struct {
	latency   time.Duration
	rooms     map[string]memRoom
	contracts map[string]memContract // por roomID
	services  []entity.Service
}

// NewMemory construye el catálogo con los datos de ejemplo.
func NewMemory(latency time.Duration) *Memory {
	m := &Memory{
		latency:   latency,
		rooms:     make(map[string]memRoom, len(sampleRooms)),
		contracts: make(map[string]memContract, len(sampleContracts)),
		services:  append([]entity.Service(nil), sampleServices...),
	}
	for _, r := range sampleRooms {
		m.rooms[r.id] = r
	}
	for _, c := range sampleContracts {
		m.contracts[c.roomID] = c
	}
	return m
}

// LookupRoom ver billing.RoomLookup.
func (m *Memory) LookupRoom(ctx context.Context, roomID string) (*billing.RoomDetails, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c, ok := m.contracts[roomID]
	if !ok {
		return nil, domain.ErrNoActiveContract
	}
	return &billing.RoomDetails{
		RoomID:       r.id,
		RoomNumber:   r.number,
		BuildingCode: r.buildingCode,
		TenantName:   c.tenant,
		ContractCode: c.code,
		Price:        decimal.NewFromInt(r.price),
	}, nil
}

// ListServices ver billing.ServiceCatalog.
func (m *Memory) ListServices(ctx context.Context) ([]*entity.Service, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]*entity.Service, len(m.services))
	for i := range m.services {
		s := m.services[i]
		out[i] = &s
	}
	return out, nil
}

// wait simula la demora de red; se corta si el contexto se cancela.
func (m *Memory) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
