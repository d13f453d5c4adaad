package model

import (
	"time"

	"aquavalle/pkg/dates"
)

const (
	TypeFullday = "fullday"
	TypeLodging = "lodging"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Reservation is the persisted booking record. For lodging, the stay occupies
// the half-open interval [check_in_date, check_out_date); for day passes,
// check_out_date is absent and only check_in_date is occupied.
type Reservation struct {
	ID           string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ClientID     string      `json:"client_id" bson:"client_id" validate:"required,mongodb"`
	Type         string      `json:"reservation_type" bson:"reservation_type" validate:"required,oneof=fullday lodging"`
	CheckInDate  dates.Date  `json:"check_in_date" bson:"check_in_date" validate:"required"`
	CheckOutDate *dates.Date `json:"check_out_date,omitempty" bson:"check_out_date,omitempty"`
	NumGuests    int         `json:"num_guests" bson:"num_guests" validate:"required,min=1"`
	RoomIDs      []string    `json:"room_ids" bson:"room_ids" validate:"omitempty,dive,mongodb"`
	TotalPrice   float64     `json:"total_price" bson:"total_price" validate:"gte=0"`
	Status       string      `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	Notes        string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// Occupies reports whether the reservation still holds its dates.
// Cancelled reservations free them.
func (r *Reservation) Occupies() bool {
	return r.Status != StatusCancelled
}

// StayEnd returns the exclusive end of the occupied interval. Day passes
// occupy exactly their check-in date.
func (r *Reservation) StayEnd() dates.Date {
	if r.Type == TypeLodging && r.CheckOutDate != nil {
		return *r.CheckOutDate
	}
	return r.CheckInDate.AddDays(1)
}

// ReservationCreate is the public wizard's submission. Client fields are
// denormalized here; the service resolves them to a Client record.
type ReservationCreate struct {
	ClientName     string      `json:"client_name" validate:"required,min=1,max=100"`
	ClientDocument string      `json:"client_document" validate:"required,min=1,max=50"`
	ClientEmail    string      `json:"client_email,omitempty" validate:"omitempty,email"`
	ClientPhone    string      `json:"client_phone" validate:"required"`
	Type           string      `json:"reservation_type" validate:"required,oneof=fullday lodging"`
	CheckInDate    dates.Date  `json:"check_in_date" validate:"required"`
	CheckOutDate   *dates.Date `json:"check_out_date,omitempty"`
	NumGuests      int         `json:"num_guests" validate:"required,min=1"`
	RoomIDs        []string    `json:"room_ids" validate:"omitempty,dive,mongodb"`
	Notes          string      `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ReservationUpdate is the admin's partial edit. Guest count is only
// honoured for day passes, where it triggers a price recompute.
type ReservationUpdate struct {
	Status       string      `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	CheckInDate  *dates.Date `json:"check_in_date,omitempty"`
	CheckOutDate *dates.Date `json:"check_out_date,omitempty"`
	NumGuests    *int        `json:"num_guests,omitempty" validate:"omitempty,min=1"`
	Notes        *string     `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ClientName   string      `json:"client_name,omitempty" validate:"omitempty,min=1,max=100"`
	ClientPhone  string      `json:"client_phone,omitempty"`
}

// ClientSummary is the client projection embedded in reservation responses.
type ClientSummary struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Document string `json:"document,omitempty"`
}

// ReservationResponse is what the API returns for a reservation: the stored
// record joined with its client and the names of its rooms.
type ReservationResponse struct {
	ID           string        `json:"id"`
	Type         string        `json:"reservation_type"`
	CheckInDate  dates.Date    `json:"check_in_date"`
	CheckOutDate *dates.Date   `json:"check_out_date,omitempty"`
	NumGuests    int           `json:"num_guests"`
	TotalPrice   float64       `json:"total_price"`
	Status       string        `json:"status"`
	Client       ClientSummary `json:"client"`
	Rooms        []string      `json:"rooms"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
