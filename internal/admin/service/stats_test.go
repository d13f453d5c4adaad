package service

import (
	"context"
	"errors"
	"testing"

	"aquavalle/internal/reservations/repository"
	"aquavalle/pkg/dates"
	mongotx "aquavalle/pkg/db/mongo"
	"aquavalle/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockStatsRepo struct {
	lastFilter repository.ListFilter
	statsErr   error
}

func (m *mockStatsRepo) Create(ctx context.Context, reservation *model.Reservation) error {
	return nil
}

func (m *mockStatsRepo) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	return nil, nil
}

func (m *mockStatsRepo) FindAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Reservation, error) {
	return nil, nil
}

func (m *mockStatsRepo) Count(ctx context.Context, filter repository.ListFilter) (int64, error) {
	m.lastFilter = filter
	return 12, m.statsErr
}

func (m *mockStatsRepo) Update(ctx context.Context, id string, reservation *model.Reservation) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockStatsRepo) FindLodgingInRange(ctx context.Context, roomIDs []string, from, to dates.Date) ([]*model.Reservation, error) {
	return nil, nil
}

func (m *mockStatsRepo) FindFulldayInRange(ctx context.Context, from, to dates.Date) ([]*model.Reservation, error) {
	return nil, nil
}

func (m *mockStatsRepo) SumFulldayGuestsOn(ctx context.Context, date dates.Date, excludeID string) (int, error) {
	return 0, nil
}

func (m *mockStatsRepo) StatusCounts(ctx context.Context, filter repository.ListFilter) (map[string]int64, error) {
	return map[string]int64{model.StatusConfirmed: 10, model.StatusCancelled: 2}, m.statsErr
}

func (m *mockStatsRepo) TypeCounts(ctx context.Context, filter repository.ListFilter) (map[string]int64, error) {
	return map[string]int64{model.TypeLodging: 8, model.TypeFullday: 4}, m.statsErr
}

func (m *mockStatsRepo) Revenue(ctx context.Context, filter repository.ListFilter) (float64, error) {
	return 1840.50, m.statsErr
}

func (m *mockStatsRepo) CountCheckInsBetween(ctx context.Context, from, to dates.Date) (int64, error) {
	return 3, m.statsErr
}

func (m *mockStatsRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func TestDashboard(t *testing.T) {
	repo := &mockStatsRepo{}
	svc := NewStatsService(repo, testConfig())

	stats, err := svc.Dashboard(context.Background(), 2, 2025)
	require.NoError(t, err)

	assert.Equal(t, "2025-02", stats.Period)
	assert.Equal(t, int64(12), stats.TotalReservations)
	assert.Equal(t, int64(10), stats.ByStatus[model.StatusConfirmed])
	assert.Equal(t, int64(8), stats.ByType[model.TypeLodging])
	assert.Equal(t, 1840.50, stats.Revenue)
	assert.Equal(t, int64(3), stats.UpcomingCheckIns)

	require.NotNil(t, repo.lastFilter.From)
	assert.Equal(t, "2025-02-01", repo.lastFilter.From.String())
	assert.Equal(t, "2025-03-01", repo.lastFilter.To.String())
}

func TestDashboard_AllTime(t *testing.T) {
	repo := &mockStatsRepo{}
	svc := NewStatsService(repo, testConfig())

	stats, err := svc.Dashboard(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "all_time", stats.Period)
	assert.Nil(t, repo.lastFilter.From)
	assert.Nil(t, repo.lastFilter.To)
}

func TestDashboard_Errors(t *testing.T) {
	t.Run("invalid month", func(t *testing.T) {
		svc := NewStatsService(&mockStatsRepo{}, testConfig())

		_, err := svc.Dashboard(context.Background(), 13, 2025)
		require.Error(t, err)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockStatsRepo{statsErr: errors.New("connection reset")}
		svc := NewStatsService(repo, testConfig())

		_, err := svc.Dashboard(context.Background(), 0, 0)
		require.Error(t, err)
	})
}
