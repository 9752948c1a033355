package domain

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places monetary amounts are rounded to
const AmountPlaces = 2

var (
	nonNumericChars = regexp.MustCompile(`[^0-9.\-]`)
	leadingNumber   = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
)

// SanitizeAmount normalizes a loosely typed amount into a two-decimal monetary value.
// Numbers must be finite and non-negative. Strings have every character other than
// digits, '.' and '-' removed before the leading number is read ("$1,234.50" -> 1234.50).
// Rounding is half away from zero on exact decimal values, so "12.345" becomes 12.35.
// The second return value is false for unsupported types, NaN, infinities,
// negative values and unparseable strings.
func SanitizeAmount(input interface{}) (decimal.Decimal, bool) {
	var value decimal.Decimal

	switch v := input.(type) {
	case decimal.Decimal:
		value = v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		value = *v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		value = decimal.NewFromFloat(v)
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero, false
		}
		value = decimal.NewFromFloat32(v)
	case int:
		value = decimal.NewFromInt(int64(v))
	case int8:
		value = decimal.NewFromInt(int64(v))
	case int16:
		value = decimal.NewFromInt(int64(v))
	case int32:
		value = decimal.NewFromInt32(v)
	case int64:
		value = decimal.NewFromInt(v)
	case uint:
		value = decimal.NewFromUint64(uint64(v))
	case uint8:
		value = decimal.NewFromUint64(uint64(v))
	case uint16:
		value = decimal.NewFromUint64(uint64(v))
	case uint32:
		value = decimal.NewFromUint64(uint64(v))
	case uint64:
		value = decimal.NewFromUint64(v)
	case string:
		parsed, ok := parseAmountString(v)
		if !ok {
			return decimal.Zero, false
		}
		value = parsed
	default:
		return decimal.Zero, false
	}

	if value.IsNegative() {
		return decimal.Zero, false
	}

	return value.Round(AmountPlaces), true
}

// parseAmountString reads the leading number out of s after stripping formatting characters
func parseAmountString(s string) (decimal.Decimal, bool) {
	cleaned := nonNumericChars.ReplaceAllString(s, "")

	match := leadingNumber.FindString(cleaned)
	if match == "" {
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(strings.TrimSuffix(match, "."))
	if err != nil {
		return decimal.Zero, false
	}

	return value, true
}

// RoundAmount rounds a monetary value to AmountPlaces, half away from zero
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}
