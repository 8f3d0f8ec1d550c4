package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/mtgtrades/chart"
	"github.com/rustyeddy/mtgtrades/prices"
	"github.com/rustyeddy/mtgtrades/trade"
)

func sample() []trade.Record {
	return []trade.Record{
		{
			ID:              "01J0000000000000000000BOLT",
			GiveCard:        "Lightning Bolt",
			ReceiveCard:     "Opt",
			Date:            time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
			GiveFallback:    2.00,
			ReceiveFallback: 1.50,
		},
		{
			ID:           "01J0000000000000000000CASH",
			GiveValue:    5,
			ReceiveCard:  "Counterspell",
			Date:         time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC),
			ReceiveValue: 0,
		},
	}
}

func TestMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$2.29", Money(2.29))
	assert.Equal(t, "$1,234.50", Money(1234.5))

	assert.Equal(t, "+$1.00", Signed(1))
	assert.Equal(t, "-$0.50", Signed(-0.5))
	assert.Equal(t, "+$0.00", Signed(0))
	assert.Equal(t, "+$0.00", Signed(-0.001))
	assert.Equal(t, "+$0.00", Signed(nan()))
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestSummary(t *testing.T) {
	t.Parallel()

	md := Summary(sample(), prices.Cache{})

	assert.Contains(t, md, "**Total Net Value: -$5.50**")
	assert.Contains(t, md, "| 1 | Lightning Bolt ($0.00 + $2.00 card) | Opt ($0.00 + $1.50 card) |")
	assert.Contains(t, md, "| -$0.50 | +$0.50 |")
	assert.Contains(t, md, "| 2 | — ($5.00 + $0.00 card) | Counterspell ($0.00 + $0.00 card) |")
}

func TestSummaryEmpty(t *testing.T) {
	t.Parallel()

	md := Summary(nil, prices.Cache{})
	assert.Contains(t, md, "No trades yet.")
	assert.Contains(t, md, "+$0.00")
}

func TestTrend(t *testing.T) {
	t.Parallel()

	md := Trend("Overall Trade Net Trend", []chart.Point{{Label: "T-2", Value: -1}, {Label: "T-1", Value: 2.5}})
	assert.Contains(t, md, "## Overall Trade Net Trend")
	assert.Contains(t, md, "▁█")
	assert.Contains(t, md, "| T-2 | T-1 |")
	assert.Contains(t, md, "| -$1.00 | +$2.50 |")

	assert.Contains(t, Trend("Empty", nil), "No history.")
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "# Title\n", false))
	assert.Equal(t, "# Title\n", buf.String())
}

func TestRenderStyled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "# Title\n\nbody text\n", true))
	assert.Contains(t, buf.String(), "body text")
}

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	out := FormatTradeOrg(sample()[0], prices.Cache{"opt": 1.00, "lightning bolt": 3.00})

	assert.Contains(t, out, "** Trade: Lightning Bolt -> Opt (01J00000)")
	assert.Contains(t, out, ":ID: 01J0000000000000000000BOLT")
	assert.Contains(t, out, ":DATE: 2025-01-10T12:00:00Z")
	assert.Contains(t, out, ":GIVE_FALLBACK: 2.00")
	assert.Contains(t, out, ":RECEIVE_FALLBACK: 1.50")
	assert.Contains(t, out, ":NET: -2.00")
	assert.Contains(t, out, ":NET_CHANGE: -1.50")
	assert.Contains(t, out, ":END:")
	assert.Contains(t, out, "*** Notes")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	out := FormatTradesOrg(sample(), prices.Cache{})
	assert.Equal(t, 2, strings.Count(out, "** Trade:"))
	assert.Contains(t, out, "\n\n\n** Trade: cash -> Counterspell")
	assert.Empty(t, FormatTradesOrg(nil, prices.Cache{}))
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(), prices.Cache{"counterspell": 4.00}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"01J0000000000000000000BOLT", "2025-01-10T12:00:00Z",
		"Lightning Bolt", "0.00", "2.00",
		"Opt", "0.00", "1.50",
		"-0.50", "0.50",
	}, rows[1])
	assert.Equal(t, "4.00", rows[2][7])
	assert.Equal(t, "-1.00", rows[2][8])
}
