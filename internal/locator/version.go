package locator

import (
	"math/big"
	"strings"
)

// Version is an installation identifier parsed as a decimal number.
// Name keeps the exact registry spelling so lookups round-trip.
type Version struct {
	Name  string
	value *big.Rat
}

// ParseVersion parses s using invariant-culture number rules: optional
// surrounding whitespace, one leading or trailing sign, comma group
// separators in the integer part and a single '.' decimal point.
// The second result is false when s is not a number.
func ParseVersion(s string) (Version, bool) {
	r, ok := parseDecimal(s)
	if !ok {
		return Version{}, false
	}
	return Version{Name: s, value: r}, true
}

// Compare returns -1, 0 or 1 as v is numerically less than, equal to or
// greater than other.
func (v Version) Compare(other Version) int {
	return v.value.Cmp(other.value)
}

// String returns the registry spelling of the version.
func (v Version) String() string {
	return v.Name
}

func parseDecimal(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	sign := ""
	switch {
	case s[0] == '+' || s[0] == '-':
		sign, s = s[:1], s[1:]
	case s[len(s)-1] == '+' || s[len(s)-1] == '-':
		sign, s = s[len(s)-1:], s[:len(s)-1]
	}
	if sign == "+" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString(sign)

	digits := 0
	seenPoint := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
			digits++
		case c == ',':
			// Group separators only inside the integer part, after a digit.
			if seenPoint || digits == 0 {
				return nil, false
			}
		case c == '.':
			if seenPoint {
				return nil, false
			}
			seenPoint = true
			b.WriteByte(c)
		default:
			return nil, false
		}
	}
	if digits == 0 {
		return nil, false
	}

	num := b.String()
	if strings.HasSuffix(num, ".") {
		num += "0"
	}
	if strings.HasPrefix(strings.TrimPrefix(num, "-"), ".") {
		num = strings.Replace(num, ".", "0.", 1)
	}

	r, ok := new(big.Rat).SetString(num)
	return r, ok
}
