package validator

import (
	"testing"

	"aquavalle/pkg/dates"
	"aquavalle/pkg/logger"
	"aquavalle/pkg/model"
)

func newTestValidator() *ReservationValidator {
	return NewReservationValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func validLodging() *model.ReservationCreate {
	checkOut := dates.MustParse("2025-03-12")
	return &model.ReservationCreate{
		ClientName:     "Maria Perez",
		ClientDocument: "V-12345678",
		ClientPhone:    "+584121234567",
		Type:           model.TypeLodging,
		CheckInDate:    dates.MustParse("2025-03-10"),
		CheckOutDate:   &checkOut,
		NumGuests:      2,
		RoomIDs:        []string{"65f000000000000000000001"},
	}
}

func validFullday() *model.ReservationCreate {
	return &model.ReservationCreate{
		ClientName:     "Maria Perez",
		ClientDocument: "V-12345678",
		ClientPhone:    "+584121234567",
		Type:           model.TypeFullday,
		CheckInDate:    dates.MustParse("2025-03-10"),
		NumGuests:      4,
	}
}

func TestValidateCreate(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		mutate    func(req *model.ReservationCreate)
		base      func() *model.ReservationCreate
		wantError bool
	}{
		{
			name:   "valid lodging",
			base:   validLodging,
			mutate: func(req *model.ReservationCreate) {},
		},
		{
			name:   "valid fullday",
			base:   validFullday,
			mutate: func(req *model.ReservationCreate) {},
		},
		{
			name:      "missing client name",
			base:      validLodging,
			mutate:    func(req *model.ReservationCreate) { req.ClientName = "" },
			wantError: true,
		},
		{
			name:      "invalid reservation type",
			base:      validLodging,
			mutate:    func(req *model.ReservationCreate) { req.Type = "weekend" },
			wantError: true,
		},
		{
			name:      "lodging without checkout",
			base:      validLodging,
			mutate:    func(req *model.ReservationCreate) { req.CheckOutDate = nil },
			wantError: true,
		},
		{
			name: "checkout equal to checkin",
			base: validLodging,
			mutate: func(req *model.ReservationCreate) {
				out := dates.MustParse("2025-03-10")
				req.CheckOutDate = &out
			},
			wantError: true,
		},
		{
			name:      "lodging without rooms",
			base:      validLodging,
			mutate:    func(req *model.ReservationCreate) { req.RoomIDs = nil },
			wantError: true,
		},
		{
			name: "duplicate room ids",
			base: validLodging,
			mutate: func(req *model.ReservationCreate) {
				req.RoomIDs = []string{"65f000000000000000000001", "65f000000000000000000001"}
			},
			wantError: true,
		},
		{
			name:      "malformed room id",
			base:      validLodging,
			mutate:    func(req *model.ReservationCreate) { req.RoomIDs = []string{"not-an-id"} },
			wantError: true,
		},
		{
			name: "fullday with different checkout",
			base: validFullday,
			mutate: func(req *model.ReservationCreate) {
				out := dates.MustParse("2025-03-11")
				req.CheckOutDate = &out
			},
			wantError: true,
		},
		{
			name: "fullday with same-day checkout",
			base: validFullday,
			mutate: func(req *model.ReservationCreate) {
				out := dates.MustParse("2025-03-10")
				req.CheckOutDate = &out
			},
			wantError: false,
		},
		{
			name: "fullday with rooms",
			base: validFullday,
			mutate: func(req *model.ReservationCreate) {
				req.RoomIDs = []string{"65f000000000000000000001"}
			},
			wantError: true,
		},
		{
			name:      "zero guests",
			base:      validFullday,
			mutate:    func(req *model.ReservationCreate) { req.NumGuests = 0 },
			wantError: true,
		},
		{
			name:      "invalid email",
			base:      validFullday,
			mutate:    func(req *model.ReservationCreate) { req.ClientEmail = "not-an-email" },
			wantError: true,
		},
		{
			name:      "empty email is fine",
			base:      validFullday,
			mutate:    func(req *model.ReservationCreate) { req.ClientEmail = "" },
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.base()
			tt.mutate(req)

			err := v.ValidateCreate(req)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateCreate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateShape(t *testing.T) {
	v := newTestValidator()

	checkIn := dates.MustParse("2025-03-10")
	checkOut := dates.MustParse("2025-03-12")

	tests := []struct {
		name        string
		reservation *model.Reservation
		wantError   bool
	}{
		{
			name: "valid lodging",
			reservation: &model.Reservation{
				Type: model.TypeLodging, CheckInDate: checkIn, CheckOutDate: &checkOut,
			},
		},
		{
			name: "lodging with inverted interval",
			reservation: &model.Reservation{
				Type: model.TypeLodging, CheckInDate: checkOut, CheckOutDate: &checkIn,
			},
			wantError: true,
		},
		{
			name: "lodging missing checkout",
			reservation: &model.Reservation{
				Type: model.TypeLodging, CheckInDate: checkIn,
			},
			wantError: true,
		},
		{
			name: "valid fullday",
			reservation: &model.Reservation{
				Type: model.TypeFullday, CheckInDate: checkIn,
			},
		},
		{
			name: "fullday with stray checkout",
			reservation: &model.Reservation{
				Type: model.TypeFullday, CheckInDate: checkIn, CheckOutDate: &checkOut,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateShape(tt.reservation)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateShape() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator()

	checkIn := dates.MustParse("2025-03-10")
	before := dates.MustParse("2025-03-09")
	after := dates.MustParse("2025-03-12")
	badStatus := "archived"
	goodStatus := "completed"
	zero := 0

	tests := []struct {
		name      string
		update    *model.ReservationUpdate
		wantError bool
	}{
		{"empty update", &model.ReservationUpdate{}, false},
		{"status change", &model.ReservationUpdate{Status: goodStatus}, false},
		{"invalid status", &model.ReservationUpdate{Status: badStatus}, true},
		{"checkout before checkin", &model.ReservationUpdate{CheckInDate: &checkIn, CheckOutDate: &before}, true},
		{"checkout after checkin", &model.ReservationUpdate{CheckInDate: &checkIn, CheckOutDate: &after}, false},
		{"zero guests", &model.ReservationUpdate{NumGuests: &zero}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(tt.update)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateUpdate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
