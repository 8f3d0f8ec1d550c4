package trade

import (
	"math"
	"math/rand"
)

// DefaultHistorySteps is the number of snapshots a mock history carries.
const DefaultHistorySteps = 6

// MockHistory fabricates a price series of the given length that ends at
// price. It walks backwards from price by up to ±10% per step and never
// goes below zero. The series is demo data for charts and plays no part
// in valuation.
func MockHistory(rng *rand.Rand, price float64, steps int) []float64 {
	if steps <= 0 {
		return nil
	}
	if math.IsNaN(price) || price < 0 {
		price = 0
	}

	out := make([]float64, steps)
	out[steps-1] = cents(price)
	cur := price
	for i := steps - 2; i >= 0; i-- {
		drift := (rng.Float64()*2 - 1) * 0.10
		cur = math.Max(0, cur*(1+drift))
		out[i] = cents(cur)
	}
	return out
}

func cents(f float64) float64 {
	return math.Round(f*100) / 100
}
