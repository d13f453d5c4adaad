package model

import "time"

// Room is immutable reference data. Capacity and nightly price never change
// concurrently with bookings, so pricing reads them without locking.
type Room struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name          string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Capacity      int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=50"`
	PricePerNight float64   `json:"price_per_night" bson:"price_per_night" validate:"required,gt=0"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Features      []string  `json:"features" bson:"features"`
	Images        []string  `json:"images" bson:"images"`
	IsActive      bool      `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
