// Package phone formats Brazilian phone numbers for display.
package phone

import "strings"

// Digits strips everything but 0-9.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Mask renders 10 or 11 digit numbers as "(DD) XXXX-XXXX" or "(DD) XXXXX-XXXX".
// Other lengths come back as bare digits.
func Mask(raw string) string {
	d := Digits(raw)
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return d
	}
}
