package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/mtgtrades/trade"
)

var csvHeader = []string{
	"id", "date",
	"give_card", "give_value", "give_price",
	"receive_card", "receive_value", "receive_price",
	"net", "net_change",
}

// WriteCSV writes one row per trade with its valuation.
func WriteCSV(w io.Writer, recs []trade.Record, src trade.PriceSource) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range recs {
		v := trade.Valuate(r, src)
		err := cw.Write([]string{
			r.ID,
			r.Date.UTC().Format(time.RFC3339),
			r.GiveCard,
			f(r.GiveValue),
			f(v.GivePrice),
			r.ReceiveCard,
			f(r.ReceiveValue),
			f(v.ReceivePrice),
			f(v.Net),
			f(v.NetChange),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
