// Package isbn validates ISBN-10 and ISBN-13 identifiers.
package isbn

import "strings"

// Normalize strips hyphens and spaces from an ISBN string
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ToUpper(s)
}

// IsValid reports whether s is a checksum-valid ISBN-10 or ISBN-13.
// Hyphens and spaces are ignored.
func IsValid(s string) bool {
	s = Normalize(s)
	switch len(s) {
	case 10:
		return isValid10(s)
	case 13:
		return isValid13(s)
	default:
		return false
	}
}

// isValid10 checks the ISBN-10 weighted checksum (mod 11).
// The final position may be 'X', representing the value 10.
func isValid10(s string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := s[i]
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c == 'X' && i == 9:
			v = 10
		default:
			return false
		}
		sum += v * (10 - i)
	}
	return sum%11 == 0
}

// isValid13 checks the ISBN-13 alternating 1/3 checksum (mod 10).
func isValid13(s string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		v := int(c - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}
