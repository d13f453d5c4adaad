package service

import (
	"aquavalle/pkg/dates"
	"aquavalle/pkg/model"
)

// Pricing is authoritative on the server; totals submitted by clients are
// ignored.
//
// Day passes are a flat per-person rate with no night component. Lodging
// charges the sum of the nightly prices of every booked room, multiplied by
// the number of nights (same-day edge clamps to one night).

func PriceFullday(numGuests int, fulldayPrice float64) float64 {
	return float64(numGuests) * fulldayPrice
}

func PriceLodging(rooms []*model.Room, checkIn, checkOut dates.Date) float64 {
	var perNight float64
	for _, room := range rooms {
		perNight += room.PricePerNight
	}

	nights := dates.Nights(checkIn, checkOut)
	return perNight * float64(max(1, nights))
}
