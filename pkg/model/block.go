package model

import (
	"time"

	"aquavalle/pkg/dates"
)

const (
	BlockMaintenance  = "maintenance"
	BlockPrivateEvent = "private_event"
	BlockOther        = "other"
)

// AvailabilityBlock removes availability independent of reservations.
// RoomID nil applies the block to every room. Unlike reservations, the end
// date is inclusive: a one-day block has start_date == end_date.
type AvailabilityBlock struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID        *string    `json:"room_id" bson:"room_id,omitempty" validate:"omitempty,mongodb"`
	StartDate     dates.Date `json:"start_date" bson:"start_date" validate:"required"`
	EndDate       dates.Date `json:"end_date" bson:"end_date" validate:"required"`
	BlockType     string     `json:"block_type" bson:"block_type" validate:"required,oneof=maintenance private_event other"`
	Reason        string     `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=500"`
	BlocksFullday bool       `json:"blocks_fullday" bson:"blocks_fullday"`
	CreatedBy     string     `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
}

// AppliesToRoom reports whether the block suppresses lodging availability
// for the given room.
func (b *AvailabilityBlock) AppliesToRoom(roomID string) bool {
	return b.RoomID == nil || *b.RoomID == roomID
}

// BlockResponse joins a block with the display name of its target room.
type BlockResponse struct {
	ID            string     `json:"id"`
	RoomID        *string    `json:"room_id"`
	RoomName      string     `json:"room_name"`
	StartDate     dates.Date `json:"start_date"`
	EndDate       dates.Date `json:"end_date"`
	BlockType     string     `json:"block_type"`
	Reason        string     `json:"reason,omitempty"`
	BlocksFullday bool       `json:"blocks_fullday"`
	CreatedAt     time.Time  `json:"created_at"`
}
