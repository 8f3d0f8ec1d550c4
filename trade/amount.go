package trade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for a value field that is not a non-negative number.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a user-supplied monetary amount. A leading "$" and
// surrounding blanks are accepted; anything else that is not a
// non-negative decimal number is rejected.
func ParseAmount(s string) (float64, error) {
	in := strings.TrimSpace(s)
	in = strings.TrimPrefix(in, "$")
	d, err := decimal.NewFromString(in)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	return d.InexactFloat64(), nil
}

// CoerceAmount is ParseAmount with every failure mapped to 0, which is how
// the add form treats blank or garbled input.
func CoerceAmount(s string) float64 {
	v, err := ParseAmount(s)
	if err != nil {
		return 0
	}
	return v
}
