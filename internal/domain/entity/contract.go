package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de contrato (derivados al leer, no se guardan salvo terminated).
const (
	ContractStatusActive     = "active"
	ContractStatusExpiring   = "expiring"
	ContractStatusExpired    = "expired"
	ContractStatusTerminated = "terminated"
)

// ContractExpiringWindow días antes del vencimiento en que el contrato se marca "expiring".
const ContractExpiringWindow = 30

// Contract contrato de arriendo de una habitación.
type Contract struct {
	ID          string
	Code        string // CTR-001...
	RoomID      string
	TenantName  string
	TenantPhone string
	StartDate   time.Time
	EndDate     time.Time
	MonthlyRent decimal.Decimal
	Terminated  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status calcula el estado del contrato a la fecha now.
func (c *Contract) Status(now time.Time) string {
	if c.Terminated {
		return ContractStatusTerminated
	}
	today := dateOnly(now)
	end := dateOnly(c.EndDate)
	if end.Before(today) {
		return ContractStatusExpired
	}
	if !end.After(today.AddDate(0, 0, ContractExpiringWindow)) {
		return ContractStatusExpiring
	}
	return ContractStatusActive
}

// IsCurrent indica si el contrato puede facturarse (ni terminado ni vencido).
func (c *Contract) IsCurrent(now time.Time) bool {
	s := c.Status(now)
	return s == ContractStatusActive || s == ContractStatusExpiring
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
