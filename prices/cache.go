// Package prices keeps the card price cache and the two services that fill it.
package prices

import (
	"math"
	"strings"
)

// Cache maps a normalized card name to its market trend price.
type Cache map[string]float64

// Normalize is the identity used for every price lookup: trimmed and lowercased.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve returns the cached price for name, or 0 when the name is empty
// or absent. A true zero price and a miss look the same.
func (c Cache) Resolve(name string) float64 {
	key := Normalize(name)
	if key == "" {
		return 0
	}
	return c[key]
}

// Add stores price under name unless the name is already priced. Zero,
// negative and NaN prices are ignored. It reports whether the entry was stored.
func (c Cache) Add(name string, price float64) bool {
	key := Normalize(name)
	if key == "" || !(price > 0) || math.IsInf(price, 0) {
		return false
	}
	if _, ok := c[key]; ok {
		return false
	}
	c[key] = price
	return true
}

// Len is the number of priced cards.
func (c Cache) Len() int { return len(c) }
