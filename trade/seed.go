package trade

import (
	"math/rand"
	"time"

	"github.com/rustyeddy/mtgtrades/pkg/id"
)

// SampleTrades returns the starter list used when no trades were ever
// saved. Dates are six, three and one month before now. Each sample gets a
// mock history drawn from rng.
func SampleTrades(now time.Time, rng *rand.Rand) []Record {
	recs := []Record{
		{
			GiveCard:        "Lightning Bolt",
			ReceiveCard:     "Opt",
			Date:            now.AddDate(0, -6, 0),
			GiveFallback:    2.00,
			ReceiveFallback: 1.50,
		},
		{
			GiveValue:       5.00,
			ReceiveCard:     "Counterspell",
			Date:            now.AddDate(0, -3, 0),
			ReceiveFallback: 4.50,
		},
		{
			GiveCard:     "Serra Angel",
			ReceiveValue: 10.00,
			Date:         now.AddDate(0, -1, 0),
			GiveFallback: 2.50,
		},
	}

	for i := range recs {
		r := &recs[i]
		r.ID = id.NewAt(r.Date)
		r.GiveHistory = MockHistory(rng, r.GiveValue+r.GiveFallback, DefaultHistorySteps)
		r.ReceiveHistory = MockHistory(rng, r.ReceiveValue+r.ReceiveFallback, DefaultHistorySteps)
	}
	return recs
}
