package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mtgtrades/chart"
	"github.com/rustyeddy/mtgtrades/report"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the net value trend of all trades or of one trade",
	Long: `Draw the trend of net value from the price history kept with each trade.

Without --trade the running total across every trade is shown. The
histories are demo data generated when a trade is added.

Examples:
  mtgtrades chart
  mtgtrades chart --trade 2`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

var chartTrade int

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().IntVarP(&chartTrade, "trade", "t", 0, "trade number to chart (default: all trades)")
}

func runChart(cmd *cobra.Command, args []string) error {
	tr, done, err := openTracker(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer done()

	st := tr.State()
	if chartTrade == 0 {
		md := report.Trend("Overall Trade Net Trend", chart.TotalTrend(st.Trades))
		return report.Render(cmd.OutOrStdout(), md, styled())
	}

	idx, err := position(fmt.Sprint(chartTrade), len(st.Trades))
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Net History (Trade %d: %s)", idx+1, st.Trades[idx].Label())
	md := report.Trend(title, chart.TradeTrend(st.Trades[idx]))
	return report.Render(cmd.OutOrStdout(), md, styled())
}
