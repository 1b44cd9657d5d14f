package data

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bar(t *testing.T, closePrice float64) Bar {
	t.Helper()
	c := decimal.NewFromFloat(closePrice)
	b, err := NewBar(c, c, c, c, c, decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(1))
	require.NoError(t, err)
	return b
}

func TestNewBarValidation(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	one := decimal.NewFromInt(1)
	_, err := NewBar(neg, one, one, one, one, one, decimal.Zero, one)
	assert.ErrorIs(t, err, ErrInvalidBar)

	_, err = NewBar(one, one, one, one, one, one, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidBar)

	_, err = NewBar(one, one, one, one, one, one, decimal.Zero, one)
	assert.NoError(t, err)
}

func TestSetDayOrdering(t *testing.T) {
	h := NewHistory()
	d1 := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.SetDay(d1, map[string]Bar{"AAPL": bar(t, 100)}))
	require.NoError(t, h.SetDay(d1.AddDate(0, 0, 1), map[string]Bar{"AAPL": bar(t, 101)}))

	err := h.SetDay(d1.AddDate(0, 0, -1), map[string]Bar{"AAPL": bar(t, 99)})
	assert.ErrorIs(t, err, ErrDateOutOfOrder)
}

func TestClosePriceMissing(t *testing.T) {
	h := NewHistory()
	d1 := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.SetDay(d1, map[string]Bar{"AAPL": bar(t, 100)}))

	_, err := h.ClosePrice(d1, "MISSING")
	assert.ErrorIs(t, err, ErrNoBar)
}

// A split must preserve position value across every historical date, not
// just the split date
func TestApplySplitContinuity(t *testing.T) {
	h := NewHistory()
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 104, 108, 112}
	for i, c := range closes {
		require.NoError(t, h.SetDay(start.AddDate(0, 0, i), map[string]Bar{"AAPL": bar(t, c)}))
	}

	position := decimal.NewFromInt(100)
	coefficient := decimal.NewFromInt(2)
	before := make([]decimal.Decimal, len(closes))
	for i := range closes {
		p, err := h.ClosePrice(start.AddDate(0, 0, i), "AAPL")
		require.NoError(t, err)
		before[i] = position.Mul(p)
	}

	require.NoError(t, h.ApplySplit("AAPL", coefficient))
	newPosition := position.Mul(coefficient)
	for i := range closes {
		p, err := h.ClosePrice(start.AddDate(0, 0, i), "AAPL")
		require.NoError(t, err)
		assert.True(t, newPosition.Mul(p).Equal(before[i]),
			"notional changed at day %d: %v != %v", i, newPosition.Mul(p), before[i])
	}

	// volume scales the other way
	adjusted, ok := h.Bar(start, "AAPL")
	require.True(t, ok)
	assert.True(t, adjusted.Volume.Equal(decimal.NewFromInt(2000)))
}

func TestCloseSeriesSkipsGaps(t *testing.T) {
	h := NewHistory()
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.SetDay(start, map[string]Bar{"AAPL": bar(t, 100)}))
	require.NoError(t, h.SetDay(start.AddDate(0, 0, 1), map[string]Bar{"MSFT": bar(t, 50)}))
	require.NoError(t, h.SetDay(start.AddDate(0, 0, 2), map[string]Bar{"AAPL": bar(t, 102)}))

	series := h.CloseSeries("AAPL", start.AddDate(0, 0, 2))
	assert.Equal(t, []float64{100, 102}, series)
}
