package utils

// Card-shaped input validation for the payment step. All checks are format
// only: no Luhn digits, no expiry ordering and no authorization against a
// real payment rail.

import (
	"regexp"
	"strings"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
)

// ValidCardNumber reports whether the input is exactly 16 digits once all
// whitespace is stripped, so "4111 1111 1111 1111" is accepted.
func ValidCardNumber(raw string) bool {
	return cardNumberRe.MatchString(stripSpaces(raw))
}

// ValidCardName reports whether the cardholder name is non-empty after
// trimming.
func ValidCardName(raw string) bool {
	return strings.TrimSpace(raw) != ""
}

// ValidExpiry reports whether the expiry matches the MM/YY pattern.
func ValidExpiry(raw string) bool {
	return expiryRe.MatchString(strings.TrimSpace(raw))
}

// ValidCVV reports whether the CVV is exactly 3 digits.
func ValidCVV(raw string) bool {
	return cvvRe.MatchString(strings.TrimSpace(raw))
}

// FormatCardNumber groups the digits of a card number into blocks of four
// for display, e.g. "4111111111111111" -> "4111 1111 1111 1111". Inputs
// without any digits are returned unchanged.
func FormatCardNumber(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return raw
	}
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var parts []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		parts = append(parts, digits[i:end])
	}
	return strings.Join(parts, " ")
}

// CardLast4 returns the final four digits of a card number for receipts.
func CardLast4(raw string) string {
	digits := stripSpaces(raw)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
