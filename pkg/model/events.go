package model

import (
	"time"

	"aquavalle/pkg/dates"
)

// Event types published on the reservations topic.
const (
	EventReservationCreated     = "reservation.created"
	EventReservationCancelled   = "reservation.cancelled"
	EventPasswordResetRequested = "admin.password_reset_requested"
)

// ReservationEvent is the payload for created/cancelled events. The notifier
// consumes it to send confirmation emails.
type ReservationEvent struct {
	ReservationID string      `json:"reservation_id"`
	Type          string      `json:"reservation_type"`
	Status        string      `json:"status"`
	CheckInDate   dates.Date  `json:"check_in_date"`
	CheckOutDate  *dates.Date `json:"check_out_date,omitempty"`
	NumGuests     int         `json:"num_guests"`
	TotalPrice    float64     `json:"total_price"`
	ClientName    string      `json:"client_name"`
	ClientEmail   string      `json:"client_email,omitempty"`
	RoomNames     []string    `json:"room_names,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// PasswordResetEvent carries a reset code to the notifier for delivery.
type PasswordResetEvent struct {
	Email      string    `json:"email"`
	Code       string    `json:"code"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
