package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portsim/currency"
	"portsim/data"
	"portsim/eventhandlers/allocation"
	"portsim/eventhandlers/brokerage"
	"portsim/eventhandlers/orderprice"
	"portsim/eventhandlers/portfolio"
	"portsim/eventhandlers/size"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventhandlers/strategies/buyandhold"
	"portsim/eventtypes/event"
	"portsim/eventtypes/market"
)

func testPortfolio(t *testing.T) *portfolio.Portfolio {
	t.Helper()
	p, err := portfolio.Setup(currency.USD, &allocation.SelfFunded{}, zerolog.Nop())
	require.NoError(t, err)
	state, err := base.NewStrategy("hold",
		map[string]currency.Code{"SPY": currency.USD},
		map[currency.Code]decimal.Decimal{currency.USD: decimal.NewFromInt(10000)})
	require.NoError(t, err)
	sizer, err := size.NewWeighted(map[string]decimal.Decimal{"SPY": decimal.NewFromInt(1)})
	require.NoError(t, err)
	require.NoError(t, p.AddStrategy(state, &buyandhold.Strategy{}, sizer, &orderprice.MarketPolicy{}))
	broker, err := brokerage.New(p.History(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, p.SetBrokerage(broker))
	return p
}

func testEvents(t *testing.T, closes []float64) []*market.Event {
	t.Helper()
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	events := make([]*market.Event, 0, len(closes))
	for i, c := range closes {
		price := decimal.NewFromFloat(c)
		bar, err := data.NewBar(price, price, price, price, price,
			decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(1))
		require.NoError(t, err)
		events = append(events, &market.Event{
			Base: event.Base{Time: start.AddDate(0, 0, i)},
			Bars: map[string]data.Bar{"SPY": bar},
		})
	}
	return events
}

func TestNew(t *testing.T) {
	p := testPortfolio(t)
	stream := NewSliceStreamer(nil)
	_, err := New(nil, stream, zerolog.Nop())
	assert.ErrorIs(t, err, errNoHandler)
	_, err = New(p, nil, zerolog.Nop())
	assert.ErrorIs(t, err, errNoStream)
	bt, err := New(p, stream, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, bt)
}

func TestRun(t *testing.T) {
	p := testPortfolio(t)
	events := testEvents(t, []float64{100, 102, 101})
	bt, err := New(p, NewSliceStreamer(events), zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, bt.Run(context.Background()))
	assert.Equal(t, 3, p.EquityCurve().Len())

	// 100 shares bought on day one, commission 10, then marked at 101
	last, ok := p.EquityCurve().Last()
	require.True(t, ok)
	assert.True(t, last.Value.Equal(decimal.NewFromInt(10090)), "got %v", last.Value)
}

func TestRunCancelledContext(t *testing.T) {
	p := testPortfolio(t)
	bt, err := New(p, NewSliceStreamer(testEvents(t, []float64{100})), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bt.Run(ctx), context.Canceled)
}

func TestSliceStreamer(t *testing.T) {
	events := testEvents(t, []float64{100, 101})
	s := NewSliceStreamer(events)
	for i := range events {
		ev, err := s.Next(context.Background())
		require.NoError(t, err)
		assert.True(t, ev.GetTime().Equal(events[i].GetTime()))
	}
	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, ErrEndOfData)

	s.Reset()
	_, err = s.Next(context.Background())
	assert.NoError(t, err)
}
