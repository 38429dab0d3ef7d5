package usecases

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const phoneRegion = "US"

// NormalizePhoneNumber rewrites raw into +1 followed by the remaining digits.
// Only US/Canada numbers are handled and the length is not checked, so odd
// input gives odd (but still +1 prefixed) output. Blank input stays blank.
func NormalizePhoneNumber(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if !strings.HasPrefix(digits, "1") {
		digits = "1" + digits
	}

	return "+1" + digits[1:]
}

// CheckPhoneNumber reports whether a normalized number is dialable.
// It is a diagnostic; the normalized value is sent either way.
func CheckPhoneNumber(normalized string) error {
	num, err := phonenumbers.Parse(normalized, phoneRegion)
	if err != nil {
		return fmt.Errorf("phone %q does not parse: %w", normalized, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("phone %q is not a valid number", normalized)
	}
	return nil
}
