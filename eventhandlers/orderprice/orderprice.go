package orderprice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portsim/data"
	"portsim/eventtypes/order"
)

// CalculateOrderPrice always returns a market order
func (m *MarketPolicy) CalculateOrderPrice(_ time.Time, _ string, _ order.Side, _ *data.History) (order.Type, decimal.Decimal, decimal.Decimal, error) {
	return order.Market, decimal.Zero, decimal.Zero, nil
}

// NewLimitPolicy builds a limit policy with a fractional offset from close,
// for example 0.01 prices buys 1% above the close
func NewLimitPolicy(offset decimal.Decimal) (*LimitPolicy, error) {
	if offset.IsNegative() {
		return nil, fmt.Errorf("%w: %v", errOffsetInvalid, offset)
	}
	return &LimitPolicy{offset: offset}, nil
}

// CalculateOrderPrice prices a limit order relative to the day's close
func (l *LimitPolicy) CalculateOrderPrice(t time.Time, asset string, side order.Side, history *data.History) (order.Type, decimal.Decimal, decimal.Decimal, error) {
	closePrice, err := history.ClosePrice(t, asset)
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	return order.Limit, offsetPrice(closePrice, l.offset, side == order.Buy), decimal.Zero, nil
}

// NewStopPolicy builds a stop policy with a fractional offset from close
func NewStopPolicy(offset decimal.Decimal) (*StopPolicy, error) {
	if offset.IsNegative() {
		return nil, fmt.Errorf("%w: %v", errOffsetInvalid, offset)
	}
	return &StopPolicy{offset: offset}, nil
}

// CalculateOrderPrice prices a stop order relative to the day's close
func (s *StopPolicy) CalculateOrderPrice(t time.Time, asset string, side order.Side, history *data.History) (order.Type, decimal.Decimal, decimal.Decimal, error) {
	closePrice, err := history.ClosePrice(t, asset)
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	// Stops trigger in the opposite direction to limits
	return order.Stop, offsetPrice(closePrice, s.offset, side == order.Sell), decimal.Zero, nil
}

// NewStopLimitPolicy builds a stop-limit policy with a fractional offset for
// the limit leg
func NewStopLimitPolicy(offset decimal.Decimal) (*StopLimitPolicy, error) {
	if offset.IsNegative() {
		return nil, fmt.Errorf("%w: %v", errOffsetInvalid, offset)
	}
	return &StopLimitPolicy{offset: offset}, nil
}

// CalculateOrderPrice sets the stop leg at the close and the limit leg
// offset beyond it
func (s *StopLimitPolicy) CalculateOrderPrice(t time.Time, asset string, side order.Side, history *data.History) (order.Type, decimal.Decimal, decimal.Decimal, error) {
	closePrice, err := history.ClosePrice(t, asset)
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	return order.StopLimit, closePrice, offsetPrice(closePrice, s.offset, side == order.Buy), nil
}

func offsetPrice(closePrice, offset decimal.Decimal, above bool) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if above {
		return closePrice.Mul(one.Add(offset))
	}
	return closePrice.Mul(one.Sub(offset))
}
