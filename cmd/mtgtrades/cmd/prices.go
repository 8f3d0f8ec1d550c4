package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mtgtrades/prices"
	"github.com/rustyeddy/mtgtrades/report"
	"github.com/rustyeddy/mtgtrades/store"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Inspect and manage the card price cache",
	Long: `The price cache is downloaded once from MTGJSON and then kept as is.

Subcommands:
  fetch   - Download the catalog if the cache is empty
  lookup  - Show the cached and Scryfall price of a card
  status  - Show how many cards are priced
  clear   - Drop the cache so the next run downloads it again

Examples:
  mtgtrades prices fetch
  mtgtrades prices lookup "Lightning Bolt"`,
}

var pricesFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the price catalog if the cache is empty",
	Args:  cobra.NoArgs,
	RunE:  runPricesFetch,
}

var pricesLookupCmd = &cobra.Command{
	Use:   "lookup <card name>",
	Short: "Show the cached and Scryfall price of a card",
	Args:  cobra.ExactArgs(1),
	RunE:  runPricesLookup,
}

var pricesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many cards are priced",
	Args:  cobra.NoArgs,
	RunE:  runPricesStatus,
}

var pricesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the cached catalog",
	Args:  cobra.NoArgs,
	RunE:  runPricesClear,
}

func init() {
	rootCmd.AddCommand(pricesCmd)
	pricesCmd.AddCommand(pricesFetchCmd, pricesLookupCmd, pricesStatusCmd, pricesClearCmd)
}

func runPricesFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, done, err := openTracker(ctx, false)
	if err != nil {
		return err
	}
	defer done()

	fetched, err := tr.EnsurePrices(ctx)
	if err != nil {
		return err
	}
	n := tr.State().Prices.Len()
	switch {
	case fetched:
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Downloaded prices for %d cards\n", n)
	case n > 0:
		fmt.Fprintf(cmd.OutOrStdout(), "Price cache already holds %d cards; run 'prices clear' to download again\n", n)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), "Price download failed; the cache is still empty (see log)")
	}
	return nil
}

func runPricesLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, done, err := openTracker(ctx, false)
	if err != nil {
		return err
	}
	defer done()

	name := args[0]
	cached := tr.State().Prices.Resolve(name)
	fb := prices.NewFallbackClient(cfg.Prices.FallbackURL, cfg.Prices.FallbackTimeout.Std(), logger)
	live := fb.FetchPrice(ctx, name)

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", prices.Normalize(name))
	fmt.Fprintf(cmd.OutOrStdout(), "  catalog:  %s\n", report.Money(cached))
	fmt.Fprintf(cmd.OutOrStdout(), "  scryfall: %s\n", report.Money(live))
	return nil
}

func runPricesStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := store.Open(cfg.Store.Type, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	cache := prices.Cache{}
	found, err := store.GetJSON(ctx, s, store.KeyPrices, &cache)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(cmd.OutOrStdout(), "Price cache is empty")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Price cache holds %d cards\n", cache.Len())
	if sq, ok := s.(*store.SQLite); ok {
		at, err := sq.UpdatedAt(ctx, store.KeyPrices)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  downloaded: %s\n", at.Local().Format(time.RFC1123))
		}
	}
	return nil
}

func runPricesClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, done, err := openTracker(ctx, false)
	if err != nil {
		return err
	}
	defer done()

	if err := tr.ClearPrices(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Price cache cleared")
	return nil
}
