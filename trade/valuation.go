package trade

import (
	"math"

	"github.com/shopspring/decimal"
)

// PriceSource resolves a card name to its live market price, 0 when unknown.
type PriceSource interface {
	Resolve(name string) float64
}

// Valuation is the per-trade figure shown next to each record.
type Valuation struct {
	// GivePrice and ReceivePrice are the effective card prices: the live
	// price when there is one, otherwise the frozen fallback.
	GivePrice    float64
	ReceivePrice float64

	Net       float64
	NetChange float64
}

// Valuate computes net value and net change for one trade.
//
// Net treats the live price and the fallback as alternatives. NetChange
// measures live minus fallback on each side; a card missing from the
// cache reads as a live price of 0, so the change reports a crash to zero
// rather than "unknown". That reading is kept as is.
func Valuate(r Record, src PriceSource) Valuation {
	liveGive := resolve(src, r.GiveCard)
	liveReceive := resolve(src, r.ReceiveCard)
	giveFallback := dec(r.GiveFallback)
	receiveFallback := dec(r.ReceiveFallback)

	givePrice := firstNonZero(liveGive, giveFallback)
	receivePrice := firstNonZero(liveReceive, receiveFallback)

	give := dec(r.GiveValue).Add(givePrice)
	receive := dec(r.ReceiveValue).Add(receivePrice)

	change := liveReceive.Sub(receiveFallback).Sub(liveGive.Sub(giveFallback))

	return Valuation{
		GivePrice:    givePrice.InexactFloat64(),
		ReceivePrice: receivePrice.InexactFloat64(),
		Net:          receive.Sub(give).InexactFloat64(),
		NetChange:    change.InexactFloat64(),
	}
}

// TotalNet is the headline aggregate. Unlike Valuate it adds the live price
// and the fallback together on each side; both formulas are reported and
// must not be merged.
func TotalNet(recs []Record, src PriceSource) float64 {
	sum := decimal.Zero
	for _, r := range recs {
		give := dec(r.GiveValue).Add(resolve(src, r.GiveCard)).Add(dec(r.GiveFallback))
		receive := dec(r.ReceiveValue).Add(resolve(src, r.ReceiveCard)).Add(dec(r.ReceiveFallback))
		sum = sum.Add(receive.Sub(give))
	}
	return sum.InexactFloat64()
}

func resolve(src PriceSource, name string) decimal.Decimal {
	if src == nil {
		return decimal.Zero
	}
	return dec(src.Resolve(name))
}

func firstNonZero(vals ...decimal.Decimal) decimal.Decimal {
	for _, v := range vals {
		if !v.IsZero() {
			return v
		}
	}
	return decimal.Zero
}

// dec converts a float to a decimal, reading NaN and infinities as 0.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
