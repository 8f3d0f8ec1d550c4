// Package report renders trades, totals and trend series for the terminal
// (Markdown), for a journal (Org) and for spreadsheets (CSV).
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/rustyeddy/mtgtrades/chart"
	"github.com/rustyeddy/mtgtrades/trade"
)

// Summary renders the trade list with the headline total. Positions are
// 1-based, matching the CLI.
func Summary(recs []trade.Record, src trade.PriceSource) string {
	var b strings.Builder
	b.WriteString("# MTG Trade Tracker\n\n")
	fmt.Fprintf(&b, "**Total Net Value: %s**\n\n", Signed(trade.TotalNet(recs, src)))

	b.WriteString("## Your Trades\n\n")
	if len(recs) == 0 {
		b.WriteString("No trades yet.\n")
		return b.String()
	}

	b.WriteString("| # | You gave | You got | Date | Net value | Net change |\n")
	b.WriteString("|---|----------|---------|------|-----------|------------|\n")
	for i, r := range recs {
		v := trade.Valuate(r, src)
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			i+1,
			side(r.GiveCard, r.GiveValue, v.GivePrice),
			side(r.ReceiveCard, r.ReceiveValue, v.ReceivePrice),
			r.Date.Local().Format("2006-01-02"),
			Signed(v.Net),
			Signed(v.NetChange),
		)
	}
	return b.String()
}

func side(card string, value, price float64) string {
	name := strings.TrimSpace(card)
	if name == "" {
		name = "—"
	}
	name = strings.ReplaceAll(name, "|", `\|`)
	return fmt.Sprintf("%s (%s + %s card)", name, Money(value), Money(price))
}

// Trend renders a series as a sparkline and a small table.
func Trend(title string, points []chart.Point) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	if len(points) == 0 {
		b.WriteString("No history.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "```\n%s\n```\n\n", chart.Sparkline(points))

	header := make([]string, len(points))
	sep := make([]string, len(points))
	vals := make([]string, len(points))
	for i, p := range points {
		header[i] = p.Label
		sep[i] = "---"
		vals[i] = Signed(p.Value)
	}
	fmt.Fprintf(&b, "| %s |\n", strings.Join(header, " | "))
	fmt.Fprintf(&b, "| %s |\n", strings.Join(sep, " | "))
	fmt.Fprintf(&b, "| %s |\n", strings.Join(vals, " | "))
	return b.String()
}

// Render writes Markdown to w. When styled is set it is laid out for a
// terminal by glamour; otherwise the Markdown goes out as is.
func Render(w io.Writer, md string, styled bool) error {
	if !styled {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
