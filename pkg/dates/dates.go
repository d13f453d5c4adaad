// Package dates provides the civil-date type used throughout the reservation
// engine. A Date has day precision, marshals as ISO "yyyy-MM-dd" in JSON and
// as a UTC-midnight datetime in BSON, so Mongo range filters on stored dates
// behave like plain comparisons.
package dates

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

const Layout = "2006-01-02"

type Date struct {
	t time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd: %w", s, err)
	}
	return Date{t: t.UTC()}, nil
}

// MustParse panics on malformed input. Only for tests and seed data.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func FromTime(t time.Time) Date {
	t = t.UTC()
	return New(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return FromTime(time.Now())
}

func (d Date) String() string {
	return d.t.Format(Layout)
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Nights returns the number of nights between check-in and check-out,
// i.e. the day difference. Negative if checkOut precedes checkIn.
func Nights(checkIn, checkOut Date) int {
	return int(checkOut.t.Sub(checkIn.t) / (24 * time.Hour))
}

// RangesOverlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. A checkout day does not conflict with a check-in
// on the same day.
func RangesOverlap(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether d falls in the half-open interval [start, end).
func Contains(start, end, d Date) bool {
	return !d.Before(start) && d.Before(end)
}

// Range returns every date in the half-open interval [start, end).
func Range(start, end Date) []Date {
	var out []Date
	for d := start; d.Before(end); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// RangeInclusive returns every date in [start, end]. Block intervals use
// inclusive end dates.
func RangeInclusive(start, end Date) []Date {
	return Range(start, end.AddDays(1))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s, expected yyyy-MM-dd string", s)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.t)
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var tm time.Time
	if err := bson.UnmarshalValue(t, data, &tm); err != nil {
		return err
	}
	*d = FromTime(tm)
	return nil
}
