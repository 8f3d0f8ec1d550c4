package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/mtgtrades/pkg/id"
	"github.com/rustyeddy/mtgtrades/trade"
)

// AddInput is the add form as typed: values are raw strings.
type AddInput struct {
	GiveCard     string
	GiveValue    string
	ReceiveCard  string
	ReceiveValue string
}

// EditInput is the edit form as typed.
type EditInput struct {
	GiveCard     string
	GiveValue    string
	ReceiveCard  string
	ReceiveValue string
}

// EditInputFor pre-fills an edit form with the record's current fields.
func EditInputFor(r trade.Record) EditInput {
	return EditInput{
		GiveCard:     r.GiveCard,
		GiveValue:    formatValue(r.GiveValue),
		ReceiveCard:  r.ReceiveCard,
		ReceiveValue: formatValue(r.ReceiveValue),
	}
}

// Add appends a trade. Value fields that do not parse become 0. A named
// card with no cached price gets a fallback lookup, which blocks until it
// answers or fails; the answer is frozen into the record.
func (t *Tracker) Add(ctx context.Context, in AddInput) (trade.Record, error) {
	now := t.now()
	rec := trade.Record{
		ID:           id.NewAt(now),
		GiveCard:     clean(in.GiveCard),
		GiveValue:    trade.CoerceAmount(in.GiveValue),
		ReceiveCard:  clean(in.ReceiveCard),
		ReceiveValue: trade.CoerceAmount(in.ReceiveValue),
		Date:         now,
	}

	rec.GiveFallback = t.fallbackFor(ctx, rec.GiveCard)
	rec.ReceiveFallback = t.fallbackFor(ctx, rec.ReceiveCard)

	v := trade.Valuate(rec, t.state.Prices)
	rec.GiveHistory = trade.MockHistory(t.rng, rec.GiveValue+v.GivePrice, t.steps)
	rec.ReceiveHistory = trade.MockHistory(t.rng, rec.ReceiveValue+v.ReceivePrice, t.steps)

	prev := t.state.Trades
	t.state.Trades = append(append([]trade.Record(nil), prev...), rec)
	if err := t.commit(ctx, prev); err != nil {
		return trade.Record{}, err
	}

	t.log.Info("trade added",
		zap.String("id", rec.ID),
		zap.String("give", rec.GiveCard),
		zap.String("receive", rec.ReceiveCard))
	return rec, nil
}

// fallbackFor asks the fallback service only for a named card the cache
// cannot price.
func (t *Tracker) fallbackFor(ctx context.Context, card string) float64 {
	if card == "" || t.fallback == nil {
		return 0
	}
	if t.state.Prices.Resolve(card) != 0 {
		return 0
	}
	return t.fallback.FetchPrice(ctx, card)
}

// Edit overwrites the card and value fields of the trade at index. Both
// values are validated first; if either fails nothing changes. Date,
// fallbacks and histories are kept.
func (t *Tracker) Edit(ctx context.Context, index int, in EditInput) (trade.Record, error) {
	cur, err := t.Get(index)
	if err != nil {
		return trade.Record{}, err
	}

	giveValue, err := trade.ParseAmount(in.GiveValue)
	if err != nil {
		return trade.Record{}, fmt.Errorf("%w: give value: %v", ErrInvalidValue, err)
	}
	receiveValue, err := trade.ParseAmount(in.ReceiveValue)
	if err != nil {
		return trade.Record{}, fmt.Errorf("%w: receive value: %v", ErrInvalidValue, err)
	}

	updated := cur
	updated.GiveCard = clean(in.GiveCard)
	updated.GiveValue = giveValue
	updated.ReceiveCard = clean(in.ReceiveCard)
	updated.ReceiveValue = receiveValue

	prev := t.state.Trades
	next := append([]trade.Record(nil), prev...)
	next[index] = updated
	t.state.Trades = next
	if err := t.commit(ctx, prev); err != nil {
		return trade.Record{}, err
	}

	t.log.Info("trade edited", zap.String("id", updated.ID), zap.Int("index", index))
	return updated, nil
}

// Delete removes the trade at index. The rest keep their order.
func (t *Tracker) Delete(ctx context.Context, index int) (trade.Record, error) {
	removed, err := t.Get(index)
	if err != nil {
		return trade.Record{}, err
	}

	prev := t.state.Trades
	next := make([]trade.Record, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)
	t.state.Trades = next
	if err := t.commit(ctx, prev); err != nil {
		return trade.Record{}, err
	}

	t.log.Info("trade deleted", zap.String("id", removed.ID), zap.Int("index", index))
	return removed, nil
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}
