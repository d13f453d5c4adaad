package service

import (
	"context"
	"testing"

	"aquavalle/internal/reservations/repository"
	"aquavalle/pkg/config"
	"aquavalle/pkg/dates"
	mongotx "aquavalle/pkg/db/mongo"
	apperrors "aquavalle/pkg/errors"
	"aquavalle/pkg/logger"
	"aquavalle/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	pachoID  = "65f000000000000000000001"
	djesusID = "65f000000000000000000002"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		MaxFulldayCapacity: 20,
	}
}

type mockReservationRepo struct {
	reservations []*model.Reservation
}

func (m *mockReservationRepo) Create(ctx context.Context, r *model.Reservation) error { return nil }

func (m *mockReservationRepo) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	return nil, nil
}

func (m *mockReservationRepo) FindAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Reservation, error) {
	return m.reservations, nil
}

func (m *mockReservationRepo) Count(ctx context.Context, filter repository.ListFilter) (int64, error) {
	return int64(len(m.reservations)), nil
}

func (m *mockReservationRepo) Update(ctx context.Context, id string, r *model.Reservation) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockReservationRepo) FindLodgingInRange(ctx context.Context, roomIDs []string, from, to dates.Date) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.Type != model.TypeLodging || r.Status == model.StatusCancelled {
			continue
		}
		if !dates.RangesOverlap(r.CheckInDate, r.StayEnd(), from, to) {
			continue
		}
		if len(roomIDs) > 0 && !sharesRoom(r.RoomIDs, roomIDs) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockReservationRepo) FindFulldayInRange(ctx context.Context, from, to dates.Date) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.reservations {
		if r.Type != model.TypeFullday || r.Status == model.StatusCancelled {
			continue
		}
		if !r.CheckInDate.Before(from) && r.CheckInDate.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReservationRepo) SumFulldayGuestsOn(ctx context.Context, date dates.Date, excludeID string) (int, error) {
	total := 0
	for _, r := range m.reservations {
		if r.ID == excludeID {
			continue
		}
		if r.Type == model.TypeFullday && r.Status != model.StatusCancelled && r.CheckInDate.Equal(date) {
			total += r.NumGuests
		}
	}
	return total, nil
}

func (m *mockReservationRepo) StatusCounts(ctx context.Context, filter repository.ListFilter) (map[string]int64, error) {
	return nil, nil
}

func (m *mockReservationRepo) TypeCounts(ctx context.Context, filter repository.ListFilter) (map[string]int64, error) {
	return nil, nil
}

func (m *mockReservationRepo) Revenue(ctx context.Context, filter repository.ListFilter) (float64, error) {
	return 0, nil
}

func (m *mockReservationRepo) CountCheckInsBetween(ctx context.Context, from, to dates.Date) (int64, error) {
	return 0, nil
}

func (m *mockReservationRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func sharesRoom(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

type mockBlockRepo struct {
	blocks []*model.AvailabilityBlock
}

func (m *mockBlockRepo) Create(ctx context.Context, b *model.AvailabilityBlock) error { return nil }

func (m *mockBlockRepo) FindByID(ctx context.Context, id string) (*model.AvailabilityBlock, error) {
	return nil, nil
}

func (m *mockBlockRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.AvailabilityBlock, error) {
	return m.blocks, nil
}

func (m *mockBlockRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.blocks)), nil
}

func (m *mockBlockRepo) FindOverlapping(ctx context.Context, from, to dates.Date) ([]*model.AvailabilityBlock, error) {
	var out []*model.AvailabilityBlock
	for _, b := range m.blocks {
		if b.StartDate.Before(to) && !b.EndDate.Before(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBlockRepo) Delete(ctx context.Context, id string) error { return nil }

type mockRoomRepo struct {
	rooms []*model.Room
}

func (m *mockRoomRepo) Create(ctx context.Context, r *model.Room) error { return nil }

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) FindByIDs(ctx context.Context, ids []string) ([]*model.Room, error) {
	var out []*model.Room
	for _, id := range ids {
		for _, r := range m.rooms {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (m *mockRoomRepo) FindAll(ctx context.Context, activeOnly bool) ([]*model.Room, error) {
	return m.rooms, nil
}

func (m *mockRoomRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.rooms)), nil
}

func newService(reservations []*model.Reservation, blocks []*model.AvailabilityBlock) AvailabilityService {
	return NewAvailabilityService(
		&mockReservationRepo{reservations: reservations},
		&mockBlockRepo{blocks: blocks},
		&mockRoomRepo{rooms: []*model.Room{
			{ID: pachoID, Name: "Pacho", Capacity: 7, PricePerNight: 70, IsActive: true},
			{ID: djesusID, Name: "D'Jesus", Capacity: 8, PricePerNight: 80, IsActive: true},
		}},
		testConfig(),
	)
}

func dateStrings(ds []dates.Date) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func assertDates(t *testing.T, got []dates.Date, want ...string) {
	t.Helper()
	gotStr := dateStrings(got)
	if len(gotStr) != len(want) {
		t.Fatalf("expected dates %v, got %v", want, gotStr)
	}
	for i := range want {
		if gotStr[i] != want[i] {
			t.Fatalf("expected dates %v, got %v", want, gotStr)
		}
	}
}

func TestUnavailableRoomDates_TwoNightStay(t *testing.T) {
	checkOut := dates.MustParse("2025-03-12")
	svc := newService([]*model.Reservation{{
		Type:         model.TypeLodging,
		CheckInDate:  dates.MustParse("2025-03-10"),
		CheckOutDate: &checkOut,
		RoomIDs:      []string{pachoID},
		Status:       model.StatusConfirmed,
	}}, nil)

	got, err := svc.UnavailableRoomDates(context.Background(), []string{pachoID},
		dates.MustParse("2025-03-01"), dates.MustParse("2025-04-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Checkout day stays available.
	assertDates(t, got, "2025-03-10", "2025-03-11")
}

func TestUnavailableRoomDates_OtherRoomUnaffected(t *testing.T) {
	checkOut := dates.MustParse("2025-03-12")
	svc := newService([]*model.Reservation{{
		Type:         model.TypeLodging,
		CheckInDate:  dates.MustParse("2025-03-10"),
		CheckOutDate: &checkOut,
		RoomIDs:      []string{pachoID},
		Status:       model.StatusConfirmed,
	}}, nil)

	got, err := svc.UnavailableRoomDates(context.Background(), []string{djesusID},
		dates.MustParse("2025-03-01"), dates.MustParse("2025-04-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, got)
}

func TestUnavailableRoomDates_CancelledFreesDates(t *testing.T) {
	checkOut := dates.MustParse("2025-03-12")
	svc := newService([]*model.Reservation{{
		Type:         model.TypeLodging,
		CheckInDate:  dates.MustParse("2025-03-10"),
		CheckOutDate: &checkOut,
		RoomIDs:      []string{pachoID},
		Status:       model.StatusCancelled,
	}}, nil)

	got, err := svc.UnavailableRoomDates(context.Background(), []string{pachoID},
		dates.MustParse("2025-03-01"), dates.MustParse("2025-04-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, got)
}

func TestUnavailableRoomDates_AllRoomsBlock(t *testing.T) {
	svc := newService(nil, []*model.AvailabilityBlock{{
		StartDate: dates.MustParse("2025-03-15"),
		EndDate:   dates.MustParse("2025-03-16"), // inclusive
		BlockType: model.BlockMaintenance,
	}})

	for _, roomID := range []string{pachoID, djesusID} {
		got, err := svc.UnavailableRoomDates(context.Background(), []string{roomID},
			dates.MustParse("2025-03-01"), dates.MustParse("2025-04-01"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, "2025-03-15", "2025-03-16")
	}
}

func TestUnavailableRoomDates_RoomScopedBlock(t *testing.T) {
	roomID := pachoID
	svc := newService(nil, []*model.AvailabilityBlock{{
		RoomID:    &roomID,
		StartDate: dates.MustParse("2025-03-15"),
		EndDate:   dates.MustParse("2025-03-15"),
		BlockType: model.BlockMaintenance,
	}})

	got, err := svc.UnavailableRoomDates(context.Background(), []string{djesusID},
		dates.MustParse("2025-03-01"), dates.MustParse("2025-04-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, got)
}

func TestUnavailableRoomDates_UnknownRoom(t *testing.T) {
	svc := newService(nil, nil)

	_, err := svc.UnavailableRoomDates(context.Background(), []string{"65f00000000000000000dead"},
		dates.MustParse("2025-03-01"), dates.MustParse("2025-04-01"))
	if err == nil {
		t.Fatal("expected error for unknown room")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestUnavailableRoomDates_Idempotent(t *testing.T) {
	checkOut := dates.MustParse("2025-03-12")
	svc := newService([]*model.Reservation{{
		Type:         model.TypeLodging,
		CheckInDate:  dates.MustParse("2025-03-10"),
		CheckOutDate: &checkOut,
		RoomIDs:      []string{pachoID},
		Status:       model.StatusConfirmed,
	}}, nil)

	first, err := svc.UnavailableRoomDates(context.Background(), []string{pachoID},
		dates.MustParse("2025-03-01"), dates.MustParse("2025-04-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.UnavailableRoomDates(context.Background(), []string{pachoID},
		dates.MustParse("2025-03-01"), dates.MustParse("2025-04-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDates(t, second, dateStrings(first)...)
}

func TestUnavailableFulldayDates_CapacityAware(t *testing.T) {
	svc := newService([]*model.Reservation{
		{
			Type:        model.TypeFullday,
			CheckInDate: dates.MustParse("2025-03-10"),
			NumGuests:   18,
			Status:      model.StatusConfirmed,
		},
		{
			Type:        model.TypeFullday,
			CheckInDate: dates.MustParse("2025-03-11"),
			NumGuests:   10,
			Status:      model.StatusConfirmed,
		},
	}, nil)

	// A party of 4 no longer fits on the 10th but fits on the 11th.
	got, err := svc.UnavailableFulldayDates(context.Background(),
		dates.MustParse("2025-03-10"), dates.MustParse("2025-03-12"), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, got, "2025-03-10")

	// A party of 11 fits on neither.
	got, err = svc.UnavailableFulldayDates(context.Background(),
		dates.MustParse("2025-03-10"), dates.MustParse("2025-03-12"), 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, got, "2025-03-10", "2025-03-11")
}

func TestUnavailableFulldayDates_BlocksFulldayFlag(t *testing.T) {
	blocked := []*model.AvailabilityBlock{{
		StartDate:     dates.MustParse("2025-03-10"),
		EndDate:       dates.MustParse("2025-03-10"),
		BlockType:     model.BlockPrivateEvent,
		BlocksFullday: true,
	}}
	lodgingOnly := []*model.AvailabilityBlock{{
		StartDate:     dates.MustParse("2025-03-10"),
		EndDate:       dates.MustParse("2025-03-10"),
		BlockType:     model.BlockMaintenance,
		BlocksFullday: false,
	}}

	got, err := newService(nil, blocked).UnavailableFulldayDates(context.Background(),
		dates.MustParse("2025-03-10"), dates.MustParse("2025-03-12"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, got, "2025-03-10")

	got, err = newService(nil, lodgingOnly).UnavailableFulldayDates(context.Background(),
		dates.MustParse("2025-03-10"), dates.MustParse("2025-03-12"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, got)
}

func TestUnavailableFulldayDates_GuestsDefaultToOne(t *testing.T) {
	svc := newService([]*model.Reservation{{
		Type:        model.TypeFullday,
		CheckInDate: dates.MustParse("2025-03-10"),
		NumGuests:   20,
		Status:      model.StatusConfirmed,
	}}, nil)

	got, err := svc.UnavailableFulldayDates(context.Background(),
		dates.MustParse("2025-03-10"), dates.MustParse("2025-03-11"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, got, "2025-03-10")
}

func TestValidateRange(t *testing.T) {
	svc := newService(nil, nil)

	_, err := svc.UnavailableFulldayDates(context.Background(),
		dates.MustParse("2025-03-12"), dates.MustParse("2025-03-10"), 1)
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
}
