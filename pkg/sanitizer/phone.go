package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Guests book mostly with Venezuelan numbers, admins with Spanish ones.
// Numbers already in international format parse regardless of region.
var supportedRegions = []string{
	"VE",
	"ES",
}

// NormalizePhone returns the E.164 form of phone, or "" when the number
// cannot be parsed for any supported region.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
