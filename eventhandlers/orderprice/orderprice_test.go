package orderprice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portsim/data"
	"portsim/eventtypes/order"
)

func historyWithClose(t *testing.T, day time.Time, closePrice float64) *data.History {
	t.Helper()
	c := decimal.NewFromFloat(closePrice)
	bar, err := data.NewBar(c, c, c, c, c,
		decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(1))
	require.NoError(t, err)
	history := data.NewHistory()
	require.NoError(t, history.SetDay(day, map[string]data.Bar{"AAPL": bar}))
	return history
}

func TestMarketPolicy(t *testing.T) {
	m := &MarketPolicy{}
	kind, price, secondary, err := m.CalculateOrderPrice(time.Now(), "AAPL", order.Buy, nil)
	require.NoError(t, err)
	assert.Equal(t, order.Market, kind)
	assert.True(t, price.IsZero())
	assert.True(t, secondary.IsZero())
}

func TestOffsetValidation(t *testing.T) {
	neg := decimal.NewFromFloat(-0.01)
	_, err := NewLimitPolicy(neg)
	assert.ErrorIs(t, err, errOffsetInvalid)
	_, err = NewStopPolicy(neg)
	assert.ErrorIs(t, err, errOffsetInvalid)
	_, err = NewStopLimitPolicy(neg)
	assert.ErrorIs(t, err, errOffsetInvalid)
}

func TestLimitPolicy(t *testing.T) {
	day := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	history := historyWithClose(t, day, 100)
	p, err := NewLimitPolicy(decimal.NewFromFloat(0.01))
	require.NoError(t, err)

	kind, price, _, err := p.CalculateOrderPrice(day, "AAPL", order.Buy, history)
	require.NoError(t, err)
	assert.Equal(t, order.Limit, kind)
	// buys priced above the close so the end-of-day model fills them
	assert.True(t, price.Equal(decimal.NewFromInt(101)), "got %v", price)

	_, price, _, err = p.CalculateOrderPrice(day, "AAPL", order.Sell, history)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(99)), "got %v", price)

	_, _, _, err = p.CalculateOrderPrice(day, "MSFT", order.Buy, history)
	assert.ErrorIs(t, err, data.ErrNoBar)
}

func TestStopPolicy(t *testing.T) {
	day := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	history := historyWithClose(t, day, 100)
	p, err := NewStopPolicy(decimal.NewFromFloat(0.02))
	require.NoError(t, err)

	kind, price, _, err := p.CalculateOrderPrice(day, "AAPL", order.Buy, history)
	require.NoError(t, err)
	assert.Equal(t, order.Stop, kind)
	// buy stops sit below the close
	assert.True(t, price.Equal(decimal.NewFromInt(98)), "got %v", price)

	_, price, _, err = p.CalculateOrderPrice(day, "AAPL", order.Sell, history)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(102)), "got %v", price)
}

func TestStopLimitPolicy(t *testing.T) {
	day := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	history := historyWithClose(t, day, 100)
	p, err := NewStopLimitPolicy(decimal.NewFromFloat(0.05))
	require.NoError(t, err)

	kind, stop, limit, err := p.CalculateOrderPrice(day, "AAPL", order.Buy, history)
	require.NoError(t, err)
	assert.Equal(t, order.StopLimit, kind)
	assert.True(t, stop.Equal(decimal.NewFromInt(100)), "got %v", stop)
	assert.True(t, limit.Equal(decimal.NewFromInt(105)), "got %v", limit)
}
