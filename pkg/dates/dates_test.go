package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid date", "2025-03-10", false},
		{"leap day", "2024-02-29", false},
		{"invalid leap day", "2025-02-29", true},
		{"wrong separator", "2025/03/10", true},
		{"datetime not accepted", "2025-03-10T00:00:00Z", true},
		{"empty", "", true},
		{"garbage", "next tuesday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && d.String() != tt.input {
				t.Errorf("round trip mismatch: %q -> %q", tt.input, d.String())
			}
		})
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"two nights", "2025-03-10", "2025-03-12", 2},
		{"one night", "2025-03-10", "2025-03-11", 1},
		{"same day", "2025-03-10", "2025-03-10", 0},
		{"across month boundary", "2025-03-30", "2025-04-02", 3},
		{"across year boundary", "2025-12-30", "2026-01-02", 3},
		{"inverted", "2025-03-12", "2025-03-10", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Nights(MustParse(tt.checkIn), MustParse(tt.checkOut))
			if got != tt.want {
				t.Errorf("Nights(%s, %s) = %d, want %d", tt.checkIn, tt.checkOut, got, tt.want)
			}
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "2025-03-10", "2025-03-12", "2025-03-10", "2025-03-12", true},
		{"partial overlap", "2025-03-10", "2025-03-12", "2025-03-11", "2025-03-14", true},
		{"contained", "2025-03-10", "2025-03-20", "2025-03-12", "2025-03-14", true},
		{"checkout equals checkin", "2025-03-10", "2025-03-12", "2025-03-12", "2025-03-14", false},
		{"checkin equals checkout", "2025-03-12", "2025-03-14", "2025-03-10", "2025-03-12", false},
		{"disjoint", "2025-03-10", "2025-03-12", "2025-03-20", "2025-03-22", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(
				MustParse(tt.aStart), MustParse(tt.aEnd),
				MustParse(tt.bStart), MustParse(tt.bEnd),
			)
			if got != tt.want {
				t.Errorf("RangesOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	start := MustParse("2025-03-10")
	end := MustParse("2025-03-12")

	if !Contains(start, end, MustParse("2025-03-10")) {
		t.Error("start date should be contained")
	}
	if !Contains(start, end, MustParse("2025-03-11")) {
		t.Error("middle date should be contained")
	}
	if Contains(start, end, MustParse("2025-03-12")) {
		t.Error("end date is exclusive")
	}
	if Contains(start, end, MustParse("2025-03-09")) {
		t.Error("date before start should not be contained")
	}
}

func TestRange(t *testing.T) {
	got := Range(MustParse("2025-03-10"), MustParse("2025-03-13"))
	want := []string{"2025-03-10", "2025-03-11", "2025-03-12"}

	if len(got) != len(want) {
		t.Fatalf("Range() returned %d dates, want %d", len(got), len(want))
	}
	for i, d := range got {
		if d.String() != want[i] {
			t.Errorf("Range()[%d] = %s, want %s", i, d.String(), want[i])
		}
	}

	if len(Range(MustParse("2025-03-10"), MustParse("2025-03-10"))) != 0 {
		t.Error("empty half-open range should yield no dates")
	}
}

func TestRangeInclusive(t *testing.T) {
	got := RangeInclusive(MustParse("2025-03-10"), MustParse("2025-03-10"))
	if len(got) != 1 || got[0].String() != "2025-03-10" {
		t.Errorf("single-day inclusive range = %v, want [2025-03-10]", got)
	}
}

func TestAddDays(t *testing.T) {
	d := MustParse("2025-03-31").AddDays(1)
	if d.String() != "2025-04-01" {
		t.Errorf("AddDays across month = %s, want 2025-04-01", d.String())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		CheckIn  Date  `json:"check_in_date"`
		CheckOut *Date `json:"check_out_date,omitempty"`
	}

	in := payload{CheckIn: MustParse("2025-03-10")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `{"check_in_date":"2025-03-10"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var out payload
	if err := json.Unmarshal([]byte(`{"check_in_date":"2025-03-10","check_out_date":"2025-03-12"}`), &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out.CheckIn.String() != "2025-03-10" {
		t.Errorf("check_in = %s, want 2025-03-10", out.CheckIn.String())
	}
	if out.CheckOut == nil || out.CheckOut.String() != "2025-03-12" {
		t.Errorf("check_out = %v, want 2025-03-12", out.CheckOut)
	}

	if err := json.Unmarshal([]byte(`{"check_in_date":"10/03/2025"}`), &out); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestJSONNull(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("Unmarshal(null) error: %v", err)
	}
	if !d.IsZero() {
		t.Error("null should decode to zero Date")
	}
}

func TestFromTimeTruncates(t *testing.T) {
	ts := time.Date(2025, time.March, 10, 23, 45, 12, 0, time.UTC)
	if got := FromTime(ts).String(); got != "2025-03-10" {
		t.Errorf("FromTime() = %s, want 2025-03-10", got)
	}
}
