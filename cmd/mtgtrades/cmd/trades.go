package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mtgtrades/internal/prompt"
	"github.com/rustyeddy/mtgtrades/report"
	"github.com/rustyeddy/mtgtrades/trade"
	"github.com/rustyeddy/mtgtrades/tracker"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new trade",
	Long: `Record a trade. Either side may be a card, cash, or both.

Value fields that are not numbers are stored as 0. Cards the price catalog
does not know are priced once through Scryfall and that price is kept with
the trade. With no flags the form is asked for interactively.

Examples:
  mtgtrades add --give-card "Lightning Bolt" --receive-card Opt
  mtgtrades add --give-value 5 --receive-card Counterspell
  mtgtrades add`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <n>",
	Short: "Change the cards and values of a trade",
	Long: `Overwrite the give/receive card and value of trade n. Fields not given
as flags keep their current value; with no flags every field is asked for,
showing the current value as the default (type "-" to blank a card).

If either value is not a number nothing is changed. The trade date and the
prices captured when it was added are never touched.

Examples:
  mtgtrades edit 2 --receive-value 3.50
  mtgtrades edit 2`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <n>",
	Aliases: []string{"rm"},
	Short:   "Remove a trade",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every trade with its net value and the running total",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var showCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Print one trade as an Org-mode journal entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

const (
	flagGiveCard     = "give-card"
	flagGiveValue    = "give-value"
	flagReceiveCard  = "receive-card"
	flagReceiveValue = "receive-value"
)

var formFlags = []string{flagGiveCard, flagGiveValue, flagReceiveCard, flagReceiveValue}

func init() {
	rootCmd.AddCommand(addCmd, editCmd, deleteCmd, listCmd, showCmd)

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().String(flagGiveCard, "", "card you gave")
		c.Flags().String(flagGiveValue, "", "cash you gave")
		c.Flags().String(flagReceiveCard, "", "card you got")
		c.Flags().String(flagReceiveValue, "", "cash you got")
	}
}

func formFlagsUsed(cmd *cobra.Command) bool {
	for _, name := range formFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// formFlag returns the value of a form flag and whether it was given.
func formFlag(cmd *cobra.Command, name string) (string, bool) {
	v, err := cmd.Flags().GetString(name)
	if err != nil || !cmd.Flags().Changed(name) {
		return "", false
	}
	return v, true
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, done, err := openTracker(ctx, true)
	if err != nil {
		return err
	}
	defer done()

	var in tracker.AddInput
	if formFlagsUsed(cmd) {
		in.GiveCard, _ = formFlag(cmd, flagGiveCard)
		in.GiveValue, _ = formFlag(cmd, flagGiveValue)
		in.ReceiveCard, _ = formFlag(cmd, flagReceiveCard)
		in.ReceiveValue, _ = formFlag(cmd, flagReceiveValue)
	} else {
		in, err = prompt.AddTrade(prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()))
		if errors.Is(err, prompt.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "\nadd cancelled")
			return nil
		}
		if err != nil {
			return err
		}
	}

	rec, err := tr.Add(ctx, in)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	v := trade.Valuate(rec, tr.State().Prices)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added trade %d: %s (net %s)\n", tr.Len(), rec.Label(), report.Signed(v.Net))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, done, err := openTracker(ctx, false)
	if err != nil {
		return err
	}
	defer done()

	idx, err := position(args[0], tr.Len())
	if err != nil {
		return err
	}
	cur, err := tr.Get(idx)
	if err != nil {
		return err
	}

	in := tracker.EditInputFor(cur)
	if formFlagsUsed(cmd) {
		if v, ok := formFlag(cmd, flagGiveCard); ok {
			in.GiveCard = v
		}
		if v, ok := formFlag(cmd, flagGiveValue); ok {
			in.GiveValue = v
		}
		if v, ok := formFlag(cmd, flagReceiveCard); ok {
			in.ReceiveCard = v
		}
		if v, ok := formFlag(cmd, flagReceiveValue); ok {
			in.ReceiveValue = v
		}
	} else {
		in, err = prompt.EditTrade(prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()), in)
		if errors.Is(err, prompt.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "\nedit cancelled, trade unchanged")
			return nil
		}
		if err != nil {
			return err
		}
	}

	rec, err := tr.Edit(ctx, idx, in)
	if errors.Is(err, tracker.ErrInvalidValue) {
		return fmt.Errorf("trade %d unchanged: %w", idx+1, err)
	}
	if err != nil {
		return fmt.Errorf("edit trade: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated trade %d: %s\n", idx+1, rec.Label())
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, done, err := openTracker(ctx, false)
	if err != nil {
		return err
	}
	defer done()

	idx, err := position(args[0], tr.Len())
	if err != nil {
		return err
	}
	rec, err := tr.Delete(ctx, idx)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %d: %s\n", idx+1, rec.Label())
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	tr, done, err := openTracker(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer done()

	st := tr.State()
	return report.Render(cmd.OutOrStdout(), report.Summary(st.Trades, st.Prices), styled())
}

func runShow(cmd *cobra.Command, args []string) error {
	tr, done, err := openTracker(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer done()

	idx, err := position(args[0], tr.Len())
	if err != nil {
		return err
	}
	rec, err := tr.Get(idx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.FormatTradeOrg(rec, tr.State().Prices))
	return nil
}
