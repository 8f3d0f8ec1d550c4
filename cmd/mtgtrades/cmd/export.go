package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mtgtrades/report"
	"github.com/rustyeddy/mtgtrades/trade"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades as CSV or Org-mode",
	Long: `Write every trade with its current valuation.

Examples:
  mtgtrades export --format csv -o trades.csv
  mtgtrades export --format org >> journal.org`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv|org")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "output file (- for stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "org" {
		return fmt.Errorf("unknown format %q", exportFormat)
	}

	tr, done, err := openTracker(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer done()

	st := tr.State()
	if exportOutput == "-" {
		if err := writeExport(cmd.OutOrStdout(), st.Trades, st.Prices); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeExport(f, st.Trades, st.Prices); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %d trades to %s\n", len(st.Trades), exportOutput)
	return nil
}

func writeExport(w io.Writer, recs []trade.Record, src trade.PriceSource) error {
	if exportFormat == "org" {
		_, err := io.WriteString(w, report.FormatTradesOrg(recs, src)+"\n")
		return err
	}
	return report.WriteCSV(w, recs, src)
}
