package service

import (
	"context"
	"sort"

	blocksrepository "aquavalle/internal/blocks/repository"
	reservationsrepository "aquavalle/internal/reservations/repository"
	roomsrepository "aquavalle/internal/rooms/repository"

	"aquavalle/pkg/config"
	"aquavalle/pkg/dates"
	apperrors "aquavalle/pkg/errors"
)

// AvailabilityService answers read-only calendar queries for the booking
// wizard. Results are derived from the live reservation and block store on
// every call.
type AvailabilityService interface {
	UnavailableRoomDates(ctx context.Context, roomIDs []string, from, to dates.Date) ([]dates.Date, error)
	UnavailableFulldayDates(ctx context.Context, from, to dates.Date, numGuests int) ([]dates.Date, error)
}

type availabilityService struct {
	reservations reservationsrepository.ReservationRepository
	blocks       blocksrepository.BlockRepository
	rooms        roomsrepository.RoomRepository
	cfg          *config.Config
}

func NewAvailabilityService(
	reservations reservationsrepository.ReservationRepository,
	blocks blocksrepository.BlockRepository,
	rooms roomsrepository.RoomRepository,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		reservations: reservations,
		blocks:       blocks,
		rooms:        rooms,
		cfg:          cfg,
	}
}

// UnavailableRoomDates returns the union, across the requested rooms, of
// dates occupied by a non-cancelled lodging stay or covered by a block that
// targets the room (or all rooms). Dates are clipped to [from, to).
func (s *availabilityService) UnavailableRoomDates(ctx context.Context, roomIDs []string, from, to dates.Date) ([]dates.Date, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	rooms, err := s.rooms.FindByIDs(ctx, roomIDs)
	if err != nil {
		return nil, apperrors.Internal("Failed to resolve rooms", err)
	}
	if len(rooms) != len(roomIDs) {
		found := make(map[string]bool, len(rooms))
		for _, room := range rooms {
			found[room.ID] = true
		}
		for _, id := range roomIDs {
			if !found[id] {
				return nil, apperrors.NotFoundWithID("Room", id)
			}
		}
	}

	unavailable := map[string]dates.Date{}

	reservations, err := s.reservations.FindLodgingInRange(ctx, roomIDs, from, to)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing reservations", err)
	}
	for _, reservation := range reservations {
		addRange(unavailable, clipRange(reservation.CheckInDate, reservation.StayEnd(), from, to))
	}

	blocks, err := s.blocks.FindOverlapping(ctx, from, to)
	if err != nil {
		return nil, apperrors.Internal("Failed to check availability blocks", err)
	}
	for _, block := range blocks {
		if !appliesToAny(block.AppliesToRoom, roomIDs) {
			continue
		}
		// Block end is inclusive; widen to half-open before clipping.
		addRange(unavailable, clipRange(block.StartDate, block.EndDate.AddDays(1), from, to))
	}

	return sortedDates(unavailable), nil
}

// UnavailableFulldayDates returns dates on which a day-pass party of
// numGuests would not fit: the committed guest sum plus the party would
// exceed the pool capacity, or a blocks_fullday block covers the date.
func (s *availabilityService) UnavailableFulldayDates(ctx context.Context, from, to dates.Date, numGuests int) ([]dates.Date, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if numGuests < 1 {
		numGuests = 1
	}

	reservations, err := s.reservations.FindFulldayInRange(ctx, from, to)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing reservations", err)
	}
	committed := map[string]int{}
	for _, reservation := range reservations {
		committed[reservation.CheckInDate.String()] += reservation.NumGuests
	}

	blocked := map[string]bool{}
	blocks, err := s.blocks.FindOverlapping(ctx, from, to)
	if err != nil {
		return nil, apperrors.Internal("Failed to check availability blocks", err)
	}
	for _, block := range blocks {
		if !block.BlocksFullday {
			continue
		}
		for _, d := range clipRange(block.StartDate, block.EndDate.AddDays(1), from, to) {
			blocked[d.String()] = true
		}
	}

	unavailable := map[string]dates.Date{}
	for _, d := range dates.Range(from, to) {
		key := d.String()
		if blocked[key] || committed[key]+numGuests > s.cfg.MaxFulldayCapacity {
			unavailable[key] = d
		}
	}

	return sortedDates(unavailable), nil
}

func validateRange(from, to dates.Date) error {
	if from.IsZero() || to.IsZero() {
		return apperrors.InvalidInput("start_date and end_date are required")
	}
	if !to.After(from) {
		return apperrors.Validation("Invalid date range", map[string]any{
			"error": "end_date must be after start_date",
		})
	}
	return nil
}

// clipRange intersects the half-open interval [start, end) with [from, to)
// and expands it to individual dates.
func clipRange(start, end, from, to dates.Date) []dates.Date {
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	return dates.Range(start, end)
}

func addRange(set map[string]dates.Date, ds []dates.Date) {
	for _, d := range ds {
		set[d.String()] = d
	}
}

func appliesToAny(applies func(string) bool, roomIDs []string) bool {
	for _, id := range roomIDs {
		if applies(id) {
			return true
		}
	}
	return false
}

func sortedDates(set map[string]dates.Date) []dates.Date {
	out := make([]dates.Date, 0, len(set))
	for _, d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
