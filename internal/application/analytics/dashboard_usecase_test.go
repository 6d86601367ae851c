package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Rental-api/internal/application/analytics"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
)

type stubDashboardRepo struct {
	rooms    repository.RoomCounts
	roomsErr error
	from, to time.Time
}

func (s *stubDashboardRepo) CountBuildings(context.Context) (int, error) { return 2, nil }
func (s *stubDashboardRepo) CountRooms(context.Context) (repository.RoomCounts, error) {
	return s.rooms, s.roomsErr
}
func (s *stubDashboardRepo) InvoiceTotals(_ context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	s.from, s.to = from, to
	return 3, decimal.NewFromInt(5415000), nil
}
func (s *stubDashboardRepo) CountExpiringContracts(context.Context, time.Time, time.Time) (int, error) {
	return 1, nil
}

func TestGetSummary(t *testing.T) {
	repo := &stubDashboardRepo{rooms: repository.RoomCounts{Total: 4, Occupied: 3, Available: 1}}
	uc := analytics.NewDashboardUseCase(repo)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	sum, err := uc.GetSummary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Buildings)
	assert.Equal(t, 4, sum.RoomsTotal)
	assert.Equal(t, "75", sum.OccupancyRate.String())
	assert.Equal(t, 3, sum.InvoicesThisMonth)
	assert.Equal(t, "5415000", sum.BilledThisMonth.String())
	assert.Equal(t, 1, sum.ContractsExpiring)
	assert.Equal(t, "March 2024", sum.DateLabel)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), repo.to)
}

func TestGetSummary_SinHabitaciones(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&stubDashboardRepo{})
	sum, err := uc.GetSummary(context.Background(), time.Now())
	require.NoError(t, err)
	assert.True(t, sum.OccupancyRate.IsZero())
}

func TestGetSummary_Error(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&stubDashboardRepo{roomsErr: errors.New("db down")})
	_, err := uc.GetSummary(context.Background(), time.Now())
	assert.ErrorContains(t, err, "habitaciones")
}
