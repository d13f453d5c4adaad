package model

import "time"

// Client identifies a guest by national id document. One document maps to
// one canonical client record across all of their reservations.
type Client struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty"`
	FullName   string    `json:"full_name" bson:"full_name" validate:"required,min=1,max=100"`
	IDDocument string    `json:"id_document" bson:"id_document" validate:"required,min=1,max=50"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone      string    `json:"phone" bson:"phone" validate:"required,e164"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
