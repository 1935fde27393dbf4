package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric fields in Pulse documents arrive as JSON numbers in some quarters
// and as strings in others. A missing field coerces to zero; a present but
// unparseable field is a coercion error and drops the single record.

// CoerceCount converts a raw JSON value into an integer count
func CoerceCount(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int64(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return i, nil
		}
		// Some quarters serialize counts as "123.0"
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("cannot coerce %q to a count", s)
		}
		return int64(f), nil
	default:
		return 0, fmt.Errorf("cannot coerce %T to a count", v)
	}
}

// CoerceAmount converts a raw JSON value into a non-negative decimal
// amount rounded to two places
func CoerceAmount(v any) (decimal.Decimal, error) {
	var d decimal.Decimal

	switch n := v.(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		d = decimal.NewFromFloat(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero, nil
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("cannot coerce %q to an amount", s)
		}
		d = parsed
	default:
		return decimal.Zero, fmt.Errorf("cannot coerce %T to an amount", v)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", d)
	}

	return d.Round(2), nil
}

// CoerceName converts a raw JSON value into an entity name string.
// Pincode names arrive as JSON numbers.
func CoerceName(v any) (string, error) {
	switch n := v.(type) {
	case nil:
		return "", nil
	case string:
		return n, nil
	case float64:
		return strconv.FormatInt(int64(n), 10), nil
	default:
		return "", fmt.Errorf("cannot coerce %T to a name", v)
	}
}
