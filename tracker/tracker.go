// Package tracker owns the session state (trade list and price cache) and
// runs every mutation against it, saving after each one.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/mtgtrades/pkg/id"
	"github.com/rustyeddy/mtgtrades/prices"
	"github.com/rustyeddy/mtgtrades/store"
	"github.com/rustyeddy/mtgtrades/trade"
)

var (
	// ErrNoSuchTrade is returned for a position outside the trade list.
	ErrNoSuchTrade = errors.New("no such trade")
	// ErrInvalidValue is returned by Edit when a value field is not a number.
	ErrInvalidValue = errors.New("invalid value")
)

// BulkSource downloads the full price catalog.
type BulkSource interface {
	Fetch(ctx context.Context) (prices.Cache, error)
}

// FallbackSource prices a single card by exact name, 0 on failure.
type FallbackSource interface {
	FetchPrice(ctx context.Context, name string) float64
}

// State is everything a render needs.
type State struct {
	Trades []trade.Record
	Prices prices.Cache
}

// Options wires a Tracker. Store is required; the rest have defaults.
type Options struct {
	Store    store.Store
	Bulk     BulkSource
	Fallback FallbackSource
	Log      *zap.Logger

	// SeedSample fills an empty store with the sample trades on first load.
	SeedSample bool
	// HistorySteps is the length of the mock histories attached to new trades.
	HistorySteps int

	Now  func() time.Time
	Rand *rand.Rand
}

// Tracker is the controller for one session.
type Tracker struct {
	store    store.Store
	bulk     BulkSource
	fallback FallbackSource
	log      *zap.Logger

	seed  bool
	steps int
	now   func() time.Time
	rng   *rand.Rand

	state State
}

func New(opts Options) *Tracker {
	t := &Tracker{
		store:    opts.Store,
		bulk:     opts.Bulk,
		fallback: opts.Fallback,
		log:      opts.Log,
		seed:     opts.SeedSample,
		steps:    opts.HistorySteps,
		now:      opts.Now,
		rng:      opts.Rand,
		state:    State{Prices: prices.Cache{}},
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return t
}

// Load reads trades and prices from the store. The two blobs are read
// independently; a missing blob is not an error but a corrupt one is.
func (t *Tracker) Load(ctx context.Context) error {
	var recs []trade.Record
	found, err := store.GetJSON(ctx, t.store, store.KeyTrades, &recs)
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}

	dirty := false
	switch {
	case !found && t.seed:
		recs = trade.SampleTrades(t.now(), t.rng)
		dirty = true
		t.log.Info("seeded sample trades", zap.Int("count", len(recs)))
	case !found:
		recs = []trade.Record{}
	}

	// Blobs written before records carried IDs get one stamped with the trade date.
	for i := range recs {
		if recs[i].ID == "" {
			recs[i].ID = id.NewAt(recs[i].Date)
			dirty = true
		}
	}
	t.state.Trades = recs

	cache := prices.Cache{}
	if _, err := store.GetJSON(ctx, t.store, store.KeyPrices, &cache); err != nil {
		return fmt.Errorf("load prices: %w", err)
	}
	if cache == nil {
		cache = prices.Cache{}
	}
	t.state.Prices = cache

	t.log.Debug("state loaded",
		zap.Int("trades", len(t.state.Trades)),
		zap.Int("prices", t.state.Prices.Len()))

	if dirty {
		return t.Save(ctx)
	}
	return nil
}

// EnsurePrices runs the bulk download when the cache is empty and saves
// the result. It reports whether a download happened and succeeded. A
// failed download is logged and leaves the cache empty; it is not an error.
func (t *Tracker) EnsurePrices(ctx context.Context) (bool, error) {
	if t.state.Prices.Len() > 0 || t.bulk == nil {
		return false, nil
	}

	cache, err := t.bulk.Fetch(ctx)
	if err != nil {
		t.log.Error("failed to load card prices", zap.Error(err))
		return false, nil
	}
	if cache == nil {
		cache = prices.Cache{}
	}

	t.state.Prices = cache
	if err := store.PutJSON(ctx, t.store, store.KeyPrices, cache); err != nil {
		return true, fmt.Errorf("save prices: %w", err)
	}
	return true, nil
}

// ClearPrices drops the persisted price cache so the next EnsurePrices
// downloads a fresh one.
func (t *Tracker) ClearPrices(ctx context.Context) error {
	if err := t.store.Delete(ctx, store.KeyPrices); err != nil {
		return fmt.Errorf("clear prices: %w", err)
	}
	t.state.Prices = prices.Cache{}
	return nil
}

// State returns the current state. The trade slice is a copy.
func (t *Tracker) State() State {
	recs := make([]trade.Record, len(t.state.Trades))
	copy(recs, t.state.Trades)
	return State{Trades: recs, Prices: t.state.Prices}
}

// Len is the number of trades.
func (t *Tracker) Len() int { return len(t.state.Trades) }

// Get returns the trade at index.
func (t *Tracker) Get(index int) (trade.Record, error) {
	if index < 0 || index >= len(t.state.Trades) {
		return trade.Record{}, fmt.Errorf("%w: %d", ErrNoSuchTrade, index)
	}
	return t.state.Trades[index], nil
}

// Valuate values the trade at index against the current cache.
func (t *Tracker) Valuate(index int) (trade.Valuation, error) {
	rec, err := t.Get(index)
	if err != nil {
		return trade.Valuation{}, err
	}
	return trade.Valuate(rec, t.state.Prices), nil
}

// TotalNet is the aggregate over every trade.
func (t *Tracker) TotalNet() float64 {
	return trade.TotalNet(t.state.Trades, t.state.Prices)
}

// Save writes the trade list.
func (t *Tracker) Save(ctx context.Context) error {
	if err := store.PutJSON(ctx, t.store, store.KeyTrades, t.state.Trades); err != nil {
		return fmt.Errorf("save trades: %w", err)
	}
	return nil
}

// commit saves after a mutation and puts the previous list back when the
// save fails, so memory never runs ahead of the store.
func (t *Tracker) commit(ctx context.Context, prev []trade.Record) error {
	if err := t.Save(ctx); err != nil {
		t.state.Trades = prev
		return err
	}
	return nil
}

func clean(name string) string {
	return strings.TrimSpace(name)
}
