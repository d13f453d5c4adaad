package model

import "time"

// ReservationLock is an advisory lock document. Its _id encodes the resource
// being booked (a room, or the day-pass pool on a date); the unique _id
// constraint makes concurrent writers for the same resource collide, and a
// TTL index on expires_at reaps locks leaked by crashed requests.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
