// Package chart turns the mock price histories into net value series.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/mtgtrades/trade"
)

// DefaultSteps is used when the first trade carries no history.
const DefaultSteps = 6

// Point is one labelled sample; labels run T-n (oldest) to T-1.
type Point struct {
	Label string
	Value float64
}

// TradeTrend is the per-step net (receive minus give) of one trade, over
// the length of its give history. A missing receive sample reads as 0.
func TradeTrend(r trade.Record) []Point {
	n := len(r.GiveHistory)
	out := make([]Point, n)
	for i, g := range r.GiveHistory {
		out[i] = Point{Label: label(n, i), Value: at(r.ReceiveHistory, i) - g}
	}
	return out
}

// TotalTrend is the running total across all trades of each step's net.
// The step count comes from the first trade's give history, or
// DefaultSteps when it has none. Each cumulative value is rounded to cents.
func TotalTrend(recs []trade.Record) []Point {
	steps := DefaultSteps
	if len(recs) > 0 && len(recs[0].GiveHistory) > 0 {
		steps = len(recs[0].GiveHistory)
	}

	out := make([]Point, steps)
	running := 0.0
	for i := 0; i < steps; i++ {
		for _, r := range recs {
			running += at(r.ReceiveHistory, i) - at(r.GiveHistory, i)
		}
		out[i] = Point{Label: label(steps, i), Value: math.Round(running*100) / 100}
	}
	return out
}

func at(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func label(n, i int) string {
	return fmt.Sprintf("T-%d", n-i)
}

var ticks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws the values as a row of block characters scaled between
// their min and max. A flat series is drawn at the lowest block.
func Sparkline(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	lo, hi := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}

	var b strings.Builder
	for _, p := range points {
		idx := 0
		if hi > lo {
			idx = int(math.Round((p.Value - lo) / (hi - lo) * float64(len(ticks)-1)))
		}
		b.WriteRune(ticks[idx])
	}
	return b.String()
}
