// Package normalize canonicalizes the raw phone and capacity tokens found in
// customer-supplied bulk order files.
package normalize

import (
	"regexp"
	"strings"
)

var (
	nonDigits = regexp.MustCompile(`\D`)

	// Canonical Ghanaian mobile number: leading 0 plus 9 digits, second
	// digit 2-9.
	ghanaMobile = regexp.MustCompile(`^0[2-9][0-9]{8}$`)
)

// Phone canonicalizes a raw phone token into the 0XXXXXXXXX form. Inputs may
// carry the 233 country code (with or without +), spaces, hyphens or
// parentheses. Returns ok=false when the cleaned value does not match a
// Ghanaian mobile number; callers keep the raw token for diagnostics.
func Phone(raw string) (string, bool) {
	digits := nonDigits.ReplaceAllString(raw, "")

	switch {
	case strings.HasPrefix(digits, "233"):
		digits = "0" + digits[3:]
	case len(digits) == 9 && !strings.HasPrefix(digits, "0"):
		digits = "0" + digits
	}

	if !ghanaMobile.MatchString(digits) {
		return "", false
	}
	return digits, true
}

// LooksLikePhone reports whether a cell plausibly holds a phone number. Used
// by column detection; deliberately looser than Phone.
func LooksLikePhone(cell string) bool {
	n := len(nonDigits.ReplaceAllString(cell, ""))
	return n == 9 || n == 10
}
