package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/mtgtrades/config"
	"github.com/rustyeddy/mtgtrades/internal/logging"
	"github.com/rustyeddy/mtgtrades/prices"
	"github.com/rustyeddy/mtgtrades/store"
	"github.com/rustyeddy/mtgtrades/tracker"
)

var rootCmd = &cobra.Command{
	Use:   "mtgtrades",
	Short: "Track Magic: The Gathering trades and their market value",
	Long: `mtgtrades records the card trades you make, prices them from the
MTGJSON catalog (falling back to Scryfall for cards the catalog lacks) and
reports what each trade and the whole list is worth today.

Trades are numbered from 1 in the order they were added.

Examples:
  mtgtrades add --give-card "Lightning Bolt" --receive-card Opt
  mtgtrades list
  mtgtrades edit 2
  mtgtrades chart`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile     string
	dbPath      string
	storeType   string
	logLevel    string
	plainOutput bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logger.Sync() }()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "store path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&storeType, "store", "", "store type: sqlite|dir (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "print raw Markdown instead of styled output")
}

func setup(cmd *cobra.Command, args []string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		c.Store.Path = dbPath
	}
	if storeType != "" {
		c.Store.Type = storeType
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c

	l, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger = l
	return nil
}

// openTracker opens the store and loads state. When fetch is set and the
// config allows it, an empty price cache is filled from the bulk feed.
// The returned close func must be called on every path.
func openTracker(ctx context.Context, fetch bool) (*tracker.Tracker, func(), error) {
	s, err := store.Open(cfg.Store.Type, cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	closeStore := func() {
		if err := s.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}

	tr := tracker.New(tracker.Options{
		Store:        s,
		Bulk:         prices.NewBulkClient(cfg.Prices.BulkURL, cfg.Prices.BulkTimeout.Std(), logger),
		Fallback:     prices.NewFallbackClient(cfg.Prices.FallbackURL, cfg.Prices.FallbackTimeout.Std(), logger),
		Log:          logger,
		SeedSample:   cfg.Tracker.SeedSample,
		HistorySteps: cfg.Tracker.HistorySteps,
	})
	if err := tr.Load(ctx); err != nil {
		closeStore()
		return nil, nil, err
	}

	if fetch && cfg.Prices.AutoFetch {
		if _, err := tr.EnsurePrices(ctx); err != nil {
			closeStore()
			return nil, nil, err
		}
	}
	return tr, closeStore, nil
}

// position turns a 1-based CLI position into a tracker index.
func position(arg string, n int) (int, error) {
	p, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("trade number %q is not a number", arg)
	}
	if p < 1 || p > n {
		return 0, fmt.Errorf("%w: %d (have %d)", tracker.ErrNoSuchTrade, p, n)
	}
	return p - 1, nil
}

func styled() bool {
	return !plainOutput && isatty.IsTerminal(os.Stdout.Fd())
}
