package trade

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"2.5", 2.5, false},
		{" 10 ", 10, false},
		{"$4.50", 4.5, false},
		{"", 0, true},
		{"abc", 0, true},
		{"12abc", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidAmount))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCoerceAmount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, CoerceAmount("abc"))
	assert.Equal(t, 0.0, CoerceAmount(""))
	assert.Equal(t, 0.0, CoerceAmount("-3"))
	assert.Equal(t, 7.25, CoerceAmount("7.25"))
}

func TestRecordAccessors(t *testing.T) {
	t.Parallel()

	r := Record{GiveCard: " ", GiveValue: 5, ReceiveCard: "Opt", ReceiveFallback: 1.5}

	assert.False(t, r.HasCard(Give))
	assert.True(t, r.HasCard(Receive))
	assert.Equal(t, 5.0, r.Value(Give))
	assert.Equal(t, 1.5, r.Fallback(Receive))
	assert.Equal(t, "Opt", r.Card(Receive))
	assert.Equal(t, "cash -> Opt", r.Label())
	assert.Equal(t, "give", Give.String())
	assert.Equal(t, "receive", Receive.String())
}

func TestRecordDecodesLegacyBlob(t *testing.T) {
	t.Parallel()

	blob := `[{"giveCard":"Lightning Bolt","giveValue":0,"receiveCard":"Opt","receiveValue":0,
		"date":"2024-01-15T10:00:00.000Z","giveFallback":2,"receiveFallback":1.5}]`

	var recs []Record
	require.NoError(t, json.Unmarshal([]byte(blob), &recs))
	require.Len(t, recs, 1)

	assert.Equal(t, "Lightning Bolt", recs[0].GiveCard)
	assert.Equal(t, 1.5, recs[0].ReceiveFallback)
	assert.Equal(t, 2024, recs[0].Date.Year())
	assert.Empty(t, recs[0].ID)
	assert.Nil(t, recs[0].GiveHistory)
}

func TestMockHistory(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	h := MockHistory(rng, 3.00, 6)

	require.Len(t, h, 6)
	assert.Equal(t, 3.00, h[5])
	for _, v := range h {
		assert.GreaterOrEqual(t, v, 0.0)
	}

	assert.Nil(t, MockHistory(rng, 1, 0))
	assert.Equal(t, []float64{0, 0}, MockHistory(rng, -4, 2))
}

func TestSampleTrades(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	recs := SampleTrades(now, rand.New(rand.NewSource(1)))

	require.Len(t, recs, 3)
	assert.Equal(t, "Lightning Bolt", recs[0].GiveCard)
	assert.Equal(t, now.AddDate(0, -6, 0), recs[0].Date)
	assert.Equal(t, "Counterspell", recs[1].ReceiveCard)
	assert.Equal(t, 5.0, recs[1].GiveValue)
	assert.Equal(t, 10.0, recs[2].ReceiveValue)

	for _, r := range recs {
		assert.NotEmpty(t, r.ID)
		assert.Len(t, r.GiveHistory, DefaultHistorySteps)
		assert.Len(t, r.ReceiveHistory, DefaultHistorySteps)
	}
	assert.Less(t, recs[0].ID, recs[1].ID)
}
