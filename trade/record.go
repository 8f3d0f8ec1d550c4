// Package trade holds the trade record and the valuation math over it.
package trade

import (
	"strings"
	"time"
)

// Record is one exchange of a card and/or cash for another card and/or cash.
// The JSON names match the blob layout the tracker has always persisted, so
// older exports decode unchanged.
type Record struct {
	ID string `json:"id,omitempty"`

	GiveCard     string  `json:"giveCard"`
	GiveValue    float64 `json:"giveValue"`
	ReceiveCard  string  `json:"receiveCard"`
	ReceiveValue float64 `json:"receiveValue"`

	Date time.Time `json:"date"`

	// Fallbacks are the per-card prices captured when the trade was added
	// and the price cache had nothing for the card. They never change.
	GiveFallback    float64 `json:"giveFallback"`
	ReceiveFallback float64 `json:"receiveFallback"`

	// Histories are mock price snapshots, oldest first. Charts only.
	GiveHistory    []float64 `json:"giveHistory,omitempty"`
	ReceiveHistory []float64 `json:"receiveHistory,omitempty"`
}

// Side selects one half of a trade.
type Side int

const (
	Give Side = iota
	Receive
)

func (s Side) String() string {
	if s == Give {
		return "give"
	}
	return "receive"
}

// Card returns the card name on the given side.
func (r Record) Card(s Side) string {
	if s == Give {
		return r.GiveCard
	}
	return r.ReceiveCard
}

// Value returns the declared cash value on the given side.
func (r Record) Value(s Side) float64 {
	if s == Give {
		return r.GiveValue
	}
	return r.ReceiveValue
}

// Fallback returns the frozen creation-time price on the given side.
func (r Record) Fallback(s Side) float64 {
	if s == Give {
		return r.GiveFallback
	}
	return r.ReceiveFallback
}

// HasCard reports whether the side names a card at all.
func (r Record) HasCard(s Side) bool {
	return strings.TrimSpace(r.Card(s)) != ""
}

// Label is a one-line human summary such as "Lightning Bolt -> Opt".
func (r Record) Label() string {
	return sideLabel(r.GiveCard, r.GiveValue) + " -> " + sideLabel(r.ReceiveCard, r.ReceiveValue)
}

func sideLabel(card string, value float64) string {
	card = strings.TrimSpace(card)
	switch {
	case card != "":
		return card
	case value > 0:
		return "cash"
	default:
		return "-"
	}
}
