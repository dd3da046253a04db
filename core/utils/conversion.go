package utils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmpty is returned when a cell holds no value.
	ErrEmpty = errors.New("empty value")
	// ErrNegative is returned when a cell holds a negative number.
	ErrNegative = errors.New("negative value")
	// ErrNotNumber is returned when a cell cannot be read as a number.
	ErrNotNumber = errors.New("not a number")
)

// numberPattern matches the first number in a price cell, e.g. "5'990.00 руб.", "1 299,5" or
// "1,299.50". Group 1 is the sign, group 2 the digits with their separators.
var numberPattern = regexp.MustCompile(`(-?)(\d[\d\s'\x{00a0}\x{2019}.,]*\d|\d)`)

// separatorReplacer removes thousands separators from the integer part.
var separatorReplacer = strings.NewReplacer(" ", "", "'", "", "\u00a0", "", "\u2019", "", "\t", "")

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		// JSON and YAML decoders hand numeric ids over as floats.
		if v == math.Trunc(v) {
			return strconv.FormatFloat(v, 'f', 0, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToDecimal converts a price cell to a non-negative decimal.
// Strings may carry currency text and thousands separators; only the first number is read.
// When truncate is true the fractional part is dropped.
func ToDecimal(val any, truncate bool) (decimal.Decimal, error) {
	var d decimal.Decimal

	switch v := val.(type) {
	case nil:
		return decimal.Zero, ErrEmpty
	case decimal.Decimal:
		d = v
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case int32:
		d = decimal.NewFromInt(int64(v))
	case uint64:
		d = decimal.NewFromUint64(v)
	case uint32:
		d = decimal.NewFromInt(int64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, ErrNotNumber
		}
		d = decimal.NewFromFloat(v)
	case float32:
		d = decimal.NewFromFloat32(v)
	default:
		parsed, err := parseDecimalString(ToString(v))
		if err != nil {
			return decimal.Zero, err
		}
		d = parsed
	}

	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	if truncate {
		d = d.Truncate(0)
	}
	return d, nil
}

func parseDecimalString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmpty
	}

	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}

	digits, ok := canonicalDecimal(separatorReplacer.Replace(m[2]))
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	text := m[1] + digits

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return d, nil
}

// canonicalDecimal rewrites a number using "," and "." as grouping or decimal marks into
// plain "1234.56" form. With both marks present the later one is the decimal mark. A mark
// repeated several times groups thousands. A single comma followed by exactly three digits
// groups thousands too; any other single mark is the decimal mark.
func canonicalDecimal(s string) (string, bool) {
	comma, dot := strings.Count(s, ","), strings.Count(s, ".")

	switch {
	case comma > 0 && dot > 0:
		mark, group := ",", "."
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			mark, group = ".", ","
		}
		if strings.Count(s, mark) > 1 {
			return "", false
		}
		intPart, frac, _ := strings.Cut(s, mark)
		if !validGroups(intPart, group) {
			return "", false
		}
		return strings.ReplaceAll(intPart, group, "") + "." + frac, true
	case comma > 1 || dot > 1:
		group := ","
		if dot > 1 {
			group = "."
		}
		if !validGroups(s, group) {
			return "", false
		}
		return strings.ReplaceAll(s, group, ""), true
	case comma == 1:
		intPart, frac, _ := strings.Cut(s, ",")
		if len(frac) == 3 {
			return intPart + frac, true
		}
		return intPart + "." + frac, true
	default:
		return s, true
	}
}

// validGroups reports whether every group after the first separator holds three digits.
func validGroups(s, sep string) bool {
	parts := strings.Split(s, sep)
	if parts[0] == "" {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

// ToStock converts a stock cell to a non-negative integer.
// Overflow markers such as ">10" resolve to overflow.
func ToStock(val any, overflow int) (int, error) {
	var n int64

	switch v := val.(type) {
	case nil:
		return 0, ErrEmpty
	case int:
		n = int64(v)
	case int64:
		n = v
	case int32:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d is out of range", ErrNotNumber, v)
		}
		n = int64(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %v is not a whole number", ErrNotNumber, v)
		}
		if math.Abs(v) > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %v is out of range", ErrNotNumber, v)
		}
		n = int64(v)
	default:
		s := strings.TrimSpace(ToString(v))
		if s == "" {
			return 0, ErrEmpty
		}
		if strings.HasPrefix(s, ">") {
			if _, err := strconv.Atoi(strings.TrimSpace(s[1:])); err != nil {
				return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
			}
			return overflow, nil
		}
		parsed, err := strconv.ParseInt(separatorReplacer.Replace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
		}
		n = parsed
	}

	if n < 0 {
		return 0, ErrNegative
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d is out of range", ErrNotNumber, n)
	}
	return int(n), nil
}
