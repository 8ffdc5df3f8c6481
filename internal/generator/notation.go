package generator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadNotation is returned when text is not a number in standard or scientific form.
var ErrBadNotation = errors.New("not a number in scientific notation")

const relTolerance = 1e-9

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻', '+': '⁺',
}

var fromSuperscript = func() map[rune]rune {
	m := make(map[rune]rune, len(superscripts))
	for k, v := range superscripts {
		m[v] = k
	}
	return m
}()

// Superscript writes n with Unicode superscript digits.
func Superscript(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		b.WriteRune(superscripts[r])
	}
	return b.String()
}

// IsSuperscript reports whether r is a superscript digit or sign.
func IsSuperscript(r rune) bool {
	_, ok := fromSuperscript[r]
	return ok
}

// FromSuperscript maps a superscript rune to its ASCII form; other runes pass through.
func FromSuperscript(r rune) rune {
	if v, ok := fromSuperscript[r]; ok {
		return v
	}
	return r
}

// PowerOfTen renders "10ⁿ".
func PowerOfTen(exp int) string {
	return "10" + Superscript(exp)
}

// Term renders "c × 10ⁿ".
func Term(coef, exp int) string {
	return fmt.Sprintf("%d × %s", coef, PowerOfTen(exp))
}

// Normalize rescales coef × 10^exp so that 1 <= coef < 10, keeping the two
// decimals an answer is printed with. A zero coefficient is returned unchanged.
func Normalize(coef float64, exp int) (float64, int) {
	for coef >= 10 {
		coef /= 10
		exp++
	}
	for coef > 0 && coef < 1 {
		coef *= 10
		exp--
	}
	// Rounding can carry into the next power, e.g. 9.996 -> 10.
	coef = math.Round(coef*100) / 100
	if coef >= 10 {
		coef /= 10
		exp++
	}
	return coef, exp
}

// FormatCoefficient prints an integral coefficient without a decimal point and
// anything else with two decimals, trailing zeros stripped.
func FormatCoefficient(coef float64) string {
	if r := math.Round(coef); math.Abs(coef-r) < relTolerance {
		return strconv.FormatInt(int64(r), 10)
	}
	s := strconv.FormatFloat(coef, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatScientific renders a normalized value as "c × 10ⁿ".
func FormatScientific(coef float64, exp int) string {
	return FormatCoefficient(coef) + " × " + PowerOfTen(exp)
}

// FormatStandard renders coef × 10^exp in positional notation, e.g. 5, -3 -> "0.005".
func FormatStandard(coef, exp int) string {
	if exp >= 0 {
		return strconv.FormatInt(int64(coef)*int64(math.Pow10(exp)), 10)
	}
	value := float64(coef) * math.Pow10(exp)
	s := strconv.FormatFloat(value, 'f', -exp, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// ParseScientific reads a value written as "1.8 × 10⁻²", "1.8x10^-2",
// "1.8e-2", "10³", or plain "0.018".
func ParseScientific(text string) (float64, error) {
	s := canonicalNotation(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadNotation)
	}
	coefStr, expStr, ok := splitPower(s)
	if !ok {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadNotation, text)
		}
		return v, nil
	}
	if coefStr == "" {
		coefStr = "1"
	}
	if _, err := strconv.ParseFloat(coefStr, 64); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNotation, text)
	}
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNotation, text)
	}
	v, err := strconv.ParseFloat(fmt.Sprintf("%se%d", coefStr, exp), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNotation, text)
	}
	return v, nil
}

// SameValue compares two values with a relative tolerance.
func SameValue(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= relTolerance*scale
}

// canonicalNotation strips spaces, turns superscripts into "^n" and maps
// every multiplication sign to '*'.
func canonicalNotation(text string) string {
	var b strings.Builder
	inSuper := false
	for _, r := range strings.TrimSpace(text) {
		if IsSuperscript(r) {
			if !inSuper {
				b.WriteByte('^')
				inSuper = true
			}
			b.WriteRune(FromSuperscript(r))
			continue
		}
		inSuper = false
		switch r {
		case ' ', '\t', ',':
			continue
		case '×', 'x', 'X', '·', '⋅':
			b.WriteByte('*')
		case '−':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitPower splits "c*10^n" or "10^n" into its coefficient and exponent.
func splitPower(s string) (string, string, bool) {
	if idx := strings.Index(s, "*10^"); idx > 0 {
		return s[:idx], strings.TrimPrefix(s[idx+len("*10^"):], "+"), true
	}
	if strings.HasPrefix(s, "10^") {
		return "", strings.TrimPrefix(s[len("10^"):], "+"), true
	}
	return "", "", false
}
