package normalize

import "strings"

// ISBN strips separators and returns the ISBN-13 form of an ISBN-10 or
// ISBN-13. It returns "" when the input is not a valid ISBN.
func ISBN(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch {
		case r >= '0' && r <= '9', r == 'X':
			b.WriteRune(r)
		case r == '-' || r == ' ':
		default:
			return ""
		}
	}
	digits := b.String()

	switch len(digits) {
	case 10:
		if !validISBN10(digits) {
			return ""
		}
		body := "978" + digits[:9]
		return body + string(isbn13Check(body))
	case 13:
		if strings.ContainsRune(digits, 'X') || isbn13Check(digits[:12]) != digits[12] {
			return ""
		}
		return digits
	default:
		return ""
	}
}

func validISBN10(s string) bool {
	sum := 0
	for i := range 10 {
		c := s[i]
		var v int
		switch {
		case c == 'X' && i == 9:
			v = 10
		case c >= '0' && c <= '9':
			v = int(c - '0')
		default:
			return false
		}
		sum += v * (10 - i)
	}
	return sum%11 == 0
}

func isbn13Check(first12 string) byte {
	sum := 0
	for i := range 12 {
		d := int(first12[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}
