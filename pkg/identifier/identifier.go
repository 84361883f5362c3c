// Package identifier classifies raw bibliographic codes by digit count and,
// for 13-digit codes, the EAN-13 checksum.
package identifier

import (
	"github.com/inkshelf/inkshelf/pkg/errcodes"
)

const (
	KindISBN10  = "ISBN_10"
	KindISBN13  = "ISBN_13"
	KindEAN13   = "EAN_13"
	KindUnknown = "UNKNOWN"
)

// Classify returns the identifier kind for a raw code. Non-digit characters
// are stripped for classification only; callers store the original string.
func Classify(raw string) (string, error) {
	digits := digitsOf(raw)

	switch len(digits) {
	case 10:
		return KindISBN10, nil
	case 13:
		if isEAN13(digits) {
			return KindEAN13, nil
		}
		return KindISBN13, nil
	default:
		return "", errcodes.InvalidIdentifier(raw)
	}
}

func digitsOf(s string) []byte {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i]-'0')
		}
	}
	return digits
}

// isEAN13 checks the EAN-13 check digit: the first 12 digits are weighted
// 1 and 3 alternately, and the check digit is (10 - sum mod 10) mod 10.
func isEAN13(digits []byte) bool {
	sum := 0
	for i := 0; i < 12; i++ {
		weight := 1
		if i%2 != 0 {
			weight = 3
		}
		sum += int(digits[i]) * weight
	}
	check := (10 - sum%10) % 10
	return int(digits[12]) == check
}
