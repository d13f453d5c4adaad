package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	reservationsrepository "aquavalle/internal/reservations/repository"

	"aquavalle/pkg/config"
	"aquavalle/pkg/dates"
	apperrors "aquavalle/pkg/errors"
)

// DashboardStats is the admin dashboard summary. Revenue counts confirmed
// and completed reservations only.
type DashboardStats struct {
	Period            string           `json:"period"`
	TotalReservations int64            `json:"total_reservations"`
	ByStatus          map[string]int64 `json:"by_status"`
	ByType            map[string]int64 `json:"by_type"`
	Revenue           float64          `json:"revenue"`
	UpcomingCheckIns  int64            `json:"upcoming_check_ins"`
}

type StatsService interface {
	Dashboard(ctx context.Context, month, year int) (*DashboardStats, error)
}

type statsService struct {
	reservations reservationsrepository.ReservationRepository
	cfg          *config.Config
}

func NewStatsService(reservations reservationsrepository.ReservationRepository, cfg *config.Config) StatsService {
	return &statsService{
		reservations: reservations,
		cfg:          cfg,
	}
}

func (s *statsService) Dashboard(ctx context.Context, month, year int) (*DashboardStats, error) {
	filter, period, err := Window(month, year)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Period: period}
	today := dates.Today()

	var errTotal, errStatus, errType, errRevenue, errUpcoming error
	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		stats.TotalReservations, errTotal = s.reservations.Count(ctx, filter)
	}()

	go func() {
		defer wg.Done()
		stats.ByStatus, errStatus = s.reservations.StatusCounts(ctx, filter)
	}()

	go func() {
		defer wg.Done()
		stats.ByType, errType = s.reservations.TypeCounts(ctx, filter)
	}()

	go func() {
		defer wg.Done()
		stats.Revenue, errRevenue = s.reservations.Revenue(ctx, filter)
	}()

	go func() {
		defer wg.Done()
		stats.UpcomingCheckIns, errUpcoming = s.reservations.CountCheckInsBetween(ctx, today, today.AddDays(7))
	}()

	wg.Wait()
	for _, err := range []error{errTotal, errStatus, errType, errRevenue, errUpcoming} {
		if err != nil {
			s.cfg.Log.Error("Failed to compute dashboard stats", "error", err)
			return nil, apperrors.Internal("Failed to compute statistics", err)
		}
	}

	return stats, nil
}

// Window translates an optional month/year pair to a check-in range filter.
// Month without year uses the current year; zero values mean all time.
func Window(month, year int) (reservationsrepository.ListFilter, string, error) {
	var filter reservationsrepository.ListFilter

	if month < 0 || month > 12 {
		return filter, "", apperrors.InvalidInput("month must be between 1 and 12")
	}
	if year < 0 {
		return filter, "", apperrors.InvalidInput("year must be a positive number")
	}

	if month == 0 && year == 0 {
		return filter, "all_time", nil
	}

	if year == 0 {
		year = time.Now().Year()
	}

	if month == 0 {
		from := dates.New(year, time.January, 1)
		to := dates.New(year+1, time.January, 1)
		filter.From = &from
		filter.To = &to
		return filter, fmt.Sprintf("%d", year), nil
	}

	from := dates.New(year, time.Month(month), 1)
	to := from.AddDays(32)
	to = dates.New(to.Year(), to.Month(), 1)
	filter.From = &from
	filter.To = &to
	return filter, fmt.Sprintf("%d-%02d", year, month), nil
}
