package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/mtgtrades/pkg/id"
	"github.com/rustyeddy/mtgtrades/trade"
)

// FormatTradeOrg renders a trade as an Org-mode block for a paper journal.
// Structured facts go in a PROPERTIES drawer; a Notes heading is left empty.
func FormatTradeOrg(r trade.Record, src trade.PriceSource) string {
	v := trade.Valuate(r, src)
	heading := fmt.Sprintf("** Trade: %s (%s)", r.Label(), id.Short(r.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", r.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", r.Date.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":GIVE_CARD: %s\n", r.GiveCard))
	b.WriteString(fmt.Sprintf(":GIVE_VALUE: %.2f\n", r.GiveValue))
	b.WriteString(fmt.Sprintf(":GIVE_FALLBACK: %.2f\n", r.GiveFallback))
	b.WriteString(fmt.Sprintf(":RECEIVE_CARD: %s\n", r.ReceiveCard))
	b.WriteString(fmt.Sprintf(":RECEIVE_VALUE: %.2f\n", r.ReceiveValue))
	b.WriteString(fmt.Sprintf(":RECEIVE_FALLBACK: %.2f\n", r.ReceiveFallback))
	b.WriteString(fmt.Sprintf(":NET: %.2f\n", v.Net))
	b.WriteString(fmt.Sprintf(":NET_CHANGE: %.2f\n", v.NetChange))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(recs []trade.Record, src trade.PriceSource) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(r, src))
	}
	return b.String()
}
