package brokerage

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"portsim/common"
	"portsim/data"
	"portsim/eventtypes/event"
	"portsim/eventtypes/fill"
	"portsim/eventtypes/order"
)

// New creates a simulated brokerage filling against the supplied history
func New(history *data.History, log zerolog.Logger) (*Simulated, error) {
	if history == nil {
		return nil, common.ErrNilArguments
	}
	return &Simulated{
		history: history,
		log:     log.With().Str("component", "brokerage").Logger(),
	}, nil
}

// OnFill registers the callback invoked for every fill. The portfolio uses
// this to apply fills to strategy state
func (s *Simulated) OnFill(fn func(*fill.Event)) {
	s.onFill = fn
}

// SubmitOrder evaluates an order against its date's bar. A missing bar is a
// normal unfilled outcome, not an error: halts and feed gaps must not abort
// a simulation
func (s *Simulated) SubmitOrder(_ context.Context, o *order.Event) (bool, error) {
	if o == nil {
		return false, common.ErrNilEvent
	}
	bar, ok := s.history.Bar(o.GetTime(), o.Asset)
	if !ok {
		o.AppendReason("no market data for date")
		s.log.Debug().
			Str("asset", o.Asset).
			Time("date", o.GetTime()).
			Msg("no market data, order not filled")
		return false, nil
	}
	price, ok := fillPrice(o, bar.Close)
	if !ok {
		o.AppendReason("fill conditions not met at close " + bar.Close.String())
		s.log.Debug().
			Str("asset", o.Asset).
			Str("type", string(o.OrderType)).
			Str("close", bar.Close.String()).
			Msg("fill conditions not met")
		return false, nil
	}

	f := &fill.Event{
		Base: event.Base{
			Time:     o.GetTime(),
			Strategy: o.GetStrategyName(),
		},
		OrderID:    o.ID,
		Asset:      o.Asset,
		Side:       o.Side,
		Quantity:   o.Quantity,
		Price:      price,
		Commission: price.Mul(decimal.NewFromInt(o.Quantity)).Mul(CommissionRate),
	}
	if s.onFill != nil {
		s.onFill(f)
	}
	return true, nil
}

// fillPrice applies the end-of-day fill rules. Every order type is judged
// against the bar's close, the single representative price of the day
func fillPrice(o *order.Event, closePrice decimal.Decimal) (decimal.Decimal, bool) {
	switch o.OrderType {
	case order.Market:
		return closePrice, true
	case order.Limit:
		if limitSatisfied(o.Side, o.Price, closePrice) {
			return o.Price, true
		}
	case order.Stop:
		if stopSatisfied(o.Side, o.Price, closePrice) {
			return o.Price, true
		}
	case order.StopLimit:
		if stopSatisfied(o.Side, o.Price, closePrice) &&
			limitSatisfied(o.Side, o.SecondaryPrice, closePrice) {
			return o.SecondaryPrice, true
		}
	}
	return decimal.Zero, false
}

func limitSatisfied(side order.Side, limit, closePrice decimal.Decimal) bool {
	if side == order.Buy {
		return limit.GreaterThanOrEqual(closePrice)
	}
	return limit.LessThanOrEqual(closePrice)
}

func stopSatisfied(side order.Side, stop, closePrice decimal.Decimal) bool {
	if side == order.Buy {
		return stop.LessThanOrEqual(closePrice)
	}
	return stop.GreaterThanOrEqual(closePrice)
}
