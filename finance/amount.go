package finance

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var thousandsMultiplier = decimal.NewFromInt(1000)

// ParseAmount normalizes free-form numeric text into a non-negative amount
// rounded to 2 decimal places. Supported forms: "2500", "2 500", "2.500",
// "2500,50", "2к"/"2k". Returns false for anything that does not normalize
// to a non-negative number.
func ParseAmount(text string) (decimal.Decimal, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return decimal.Decimal{}, false
	}

	s = stripSpaces(s)

	mult := decimal.NewFromInt(1)
	if strings.HasSuffix(s, "к") || strings.HasSuffix(s, "k") {
		mult = thousandsMultiplier
		s = strings.TrimSuffix(strings.TrimSuffix(s, "к"), "k")
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal point; everything before it
		// is thousands grouping.
		decPos := strings.LastIndexAny(s, ",.")
		intPart := stripSeparators(s[:decPos])
		fracPart := stripSeparators(s[decPos+1:])
		s = intPart + "." + fracPart
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	s = keepNumeric(s)

	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	val = val.Mul(mult)
	if val.IsNegative() {
		return decimal.Decimal{}, false
	}
	return val.Round(2), true
}

func stripSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || r == '.' {
			return -1
		}
		return r
	}, s)
}

func keepNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
}
