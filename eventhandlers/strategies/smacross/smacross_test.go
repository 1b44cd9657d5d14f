package smacross

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portsim/currency"
	"portsim/data"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventtypes/fill"
	"portsim/eventtypes/order"
	"portsim/eventtypes/signal"
)

func TestNew(t *testing.T) {
	_, err := New(0, 10)
	assert.ErrorIs(t, err, errPeriodsInvalid)
	_, err = New(10, 10)
	assert.ErrorIs(t, err, errPeriodsInvalid)
	_, err = New(50, 20)
	assert.ErrorIs(t, err, errPeriodsInvalid)
	s, err := New(20, 50)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func seedCloses(t *testing.T, history *data.History, start time.Time, closes []float64) time.Time {
	t.Helper()
	var last time.Time
	for i, c := range closes {
		price := decimal.NewFromFloat(c)
		bar, err := data.NewBar(price, price, price, price, price,
			decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(1))
		require.NoError(t, err)
		last = start.AddDate(0, 0, i)
		require.NoError(t, history.SetDay(last, map[string]data.Bar{"AAPL": bar}))
	}
	return last
}

func TestOnDataCrossover(t *testing.T) {
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	state, err := base.NewStrategy("cross",
		map[string]currency.Code{"AAPL": currency.USD}, nil)
	require.NoError(t, err)
	s, err := New(2, 3)
	require.NoError(t, err)

	// rising closes, fast average above slow
	history := data.NewHistory()
	last := seedCloses(t, history, start, []float64{100, 110, 120})
	sig, err := s.OnData(last, history, state)
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, map[string]signal.Type{"AAPL": signal.Long}, sig.Directions)

	// already long and still bullish, nothing to do
	require.NoError(t, state.ApplyFill(&fill.Event{
		Asset:    "AAPL",
		Side:     order.Buy,
		Quantity: 10,
		Price:    decimal.NewFromInt(120),
	}))
	sig, err = s.OnData(last, history, state)
	require.NoError(t, err)
	assert.Nil(t, sig)

	// falling closes flip the posture, held position exits
	history = data.NewHistory()
	last = seedCloses(t, history, start, []float64{120, 110, 100})
	sig, err = s.OnData(last, history, state)
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, map[string]signal.Type{"AAPL": signal.Exit}, sig.Directions)
}

func TestOnDataInsufficientHistory(t *testing.T) {
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	history := data.NewHistory()
	last := seedCloses(t, history, start, []float64{100, 110})

	state, err := base.NewStrategy("cross",
		map[string]currency.Code{"AAPL": currency.USD}, nil)
	require.NoError(t, err)
	s, err := New(2, 3)
	require.NoError(t, err)

	sig, err := s.OnData(last, history, state)
	require.NoError(t, err)
	assert.Nil(t, sig)
}
