package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"venezuelan mobile national", "0424-7739434", "+584247739434"},
		{"venezuelan mobile international", "+58 424 773 9434", "+584247739434"},
		{"spanish mobile", "+34 612 345 678", "+34612345678"},
		{"already e164", "+584247739434", "+584247739434"},
		{"empty", "", ""},
		{"garbage", "not-a-phone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
