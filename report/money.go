package report

import (
	"math"

	"github.com/Rhymond/go-money"
)

// Money formats an amount as US dollars, e.g. "$1,234.50".
func Money(f float64) string {
	return usd(f).Display()
}

// Signed formats an amount with an explicit sign: "+$1.00", "-$0.50".
// Zero is shown as "+$0.00".
func Signed(f float64) string {
	if f < 0 && usd(-f).Amount() != 0 {
		return "-" + usd(-f).Display()
	}
	return "+" + usd(math.Abs(f)).Display()
}

// usd rounds to the nearest cent; money.NewFromFloat truncates instead.
func usd(f float64) *money.Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return money.New(int64(math.Round(f*100)), money.USD)
}
