package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"portsim/common"
	"portsim/currency"
	"portsim/data"
	"portsim/eventhandlers/allocation"
	"portsim/eventhandlers/brokerage"
	"portsim/eventhandlers/orderprice"
	"portsim/eventhandlers/size"
	"portsim/eventhandlers/strategies"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventtypes/corporate"
	"portsim/eventtypes/event"
	"portsim/eventtypes/fill"
	"portsim/eventtypes/market"
	"portsim/eventtypes/order"
	"portsim/eventtypes/rebalance"
	"portsim/eventtypes/signal"
)

// Setup creates a portfolio reporting in the given base currency. The
// brokerage is wired separately so a simulated venue can fill against the
// portfolio's own history
func Setup(baseCurrency currency.Code, allocator allocation.Handler, log zerolog.Logger) (*Portfolio, error) {
	if baseCurrency.IsEmpty() {
		return nil, errBaseCurrencyUnset
	}
	if allocator == nil {
		return nil, errAllocatorUnset
	}
	history := data.NewHistory()
	rates := currency.NewRateHistory()
	conv, err := currency.NewConverter(baseCurrency, rates)
	if err != nil {
		return nil, err
	}
	return &Portfolio{
		baseCurrency: baseCurrency,
		history:      history,
		rates:        rates,
		conv:         conv,
		allocator:    allocator,
		settings:     make(map[string]*Settings),
		equity:       &EquityCurve{},
		log:          log.With().Str("component", "portfolio").Logger(),
	}, nil
}

// History exposes the canonical bar store so the simulated brokerage can
// fill against it. Handlers must treat it as read-only
func (p *Portfolio) History() *data.History {
	return p.history
}

// Converter returns the portfolio's currency conversion service
func (p *Portfolio) Converter() *currency.Converter {
	return p.conv
}

// SetBrokerage wires the order venue and registers the portfolio as the
// fill listener
func (p *Portfolio) SetBrokerage(b brokerage.Brokerage) error {
	if b == nil {
		return errBrokerageUnset
	}
	p.broker = b
	b.OnFill(func(f *fill.Event) {
		p.queue = append(p.queue, f)
	})
	return nil
}

// AddStrategy registers a strategy aggregate with its signal generator,
// sizer and price policy. Names must be unique
func (p *Portfolio) AddStrategy(state *base.Strategy, generator strategies.Handler, sizer size.Handler, prices orderprice.Handler) error {
	if state == nil {
		return common.ErrNilArguments
	}
	if generator == nil {
		return errGeneratorUnset
	}
	if sizer == nil {
		return errSizerUnset
	}
	if prices == nil {
		return errPricePolicyUnset
	}
	if _, ok := p.settings[state.Name()]; ok {
		return fmt.Errorf("%w: %v", errDuplicateStrategy, state.Name())
	}
	p.settings[state.Name()] = &Settings{
		State:     state,
		Generator: generator,
		Sizer:     sizer,
		Prices:    prices,
	}
	p.names = append(p.names, state.Name())
	return nil
}

// OnMarket runs one trading day to completion: ingest, corporate actions,
// allocation, signals, orders, fills, then valuation. Events within the day
// are dispatched sequentially off an internal queue so each phase observes
// the state every earlier phase produced
func (p *Portfolio) OnMarket(ctx context.Context, ev *market.Event) error {
	if ev == nil {
		return common.ErrNilEvent
	}
	if len(p.names) == 0 {
		return errNoStrategies
	}
	if p.broker == nil {
		return errBrokerageUnset
	}
	t := data.Day(ev.GetTime())
	if last, ok := p.equity.Last(); ok && t.Before(last.Time) {
		return fmt.Errorf("%w: market event at %v", ErrDateBeforeLast, t.Format(time.DateOnly))
	}

	p.queue = append(p.queue, ev)
	for len(p.queue) > 0 {
		next := p.queue[0]
		p.queue = p.queue[1:]
		if err := p.handle(ctx, next); err != nil {
			return err
		}
	}

	value, err := p.TotalValue(t)
	if err != nil {
		return err
	}
	p.log.Debug().
		Time("date", t).
		Str("equity", value.String()).
		Msg("day complete")
	return p.equity.Add(t, value)
}

// handle dispatches over the closed set of event variants
func (p *Portfolio) handle(ctx context.Context, e common.Event) error {
	switch ev := e.(type) {
	case *market.Event:
		return p.handleMarket(ev)
	case *corporate.DividendEvent:
		return p.handleDividend(ev)
	case *corporate.SplitEvent:
		return p.handleSplit(ev)
	case *rebalance.Event:
		return p.handleRebalance(ev)
	case *signal.Event:
		return p.handleSignal(ev)
	case *order.Event:
		return p.handleOrder(ctx, ev)
	case *fill.Event:
		return p.handleFill(ev)
	default:
		return fmt.Errorf("%w: %T", common.ErrInvalidDataType, e)
	}
}

// handleMarket ingests the day's bars and FX rates, then queues corporate
// actions ahead of the allocation and signal phase
func (p *Portfolio) handleMarket(ev *market.Event) error {
	t := data.Day(ev.GetTime())
	if err := p.history.SetDay(t, ev.Bars); err != nil {
		return err
	}
	if len(ev.Rates) > 0 {
		if err := p.rates.SetRates(t, ev.Rates); err != nil {
			return err
		}
	}

	assets := make([]string, 0, len(ev.Bars))
	for asset := range ev.Bars {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	one := decimal.NewFromInt(1)
	for _, asset := range assets {
		bar := ev.Bars[asset]
		if bar.Dividend.IsPositive() {
			p.queue = append(p.queue, &corporate.DividendEvent{
				Base:   baseAt(t),
				Asset:  asset,
				Amount: bar.Dividend,
			})
		}
		if !bar.SplitCoefficient.Equal(one) {
			p.queue = append(p.queue, &corporate.SplitEvent{
				Base:        baseAt(t),
				Asset:       asset,
				Coefficient: bar.SplitCoefficient,
			})
		}
	}
	p.queue = append(p.queue, &rebalance.Event{Base: baseAt(t)})
	return nil
}

// handleDividend credits dividendPerShare multiplied by held quantity to
// every strategy holding the asset, in the asset's native currency
func (p *Portfolio) handleDividend(ev *corporate.DividendEvent) error {
	for _, name := range p.names {
		if err := p.settings[name].State.ApplyDividend(ev.Asset, ev.Amount); err != nil {
			return err
		}
	}
	p.log.Info().
		Time("date", ev.GetTime()).
		Str("asset", ev.Asset).
		Str("perShare", ev.Amount.String()).
		Msg("dividend applied")
	return nil
}

// handleSplit rescales every strategy's position and the asset's entire bar
// history so backward-looking calculations stay continuous
func (p *Portfolio) handleSplit(ev *corporate.SplitEvent) error {
	for _, name := range p.names {
		p.settings[name].State.ApplySplit(ev.Asset, ev.Coefficient)
	}
	if err := p.history.ApplySplit(ev.Asset, ev.Coefficient); err != nil {
		return err
	}
	p.log.Info().
		Time("date", ev.GetTime()).
		Str("asset", ev.Asset).
		Str("coefficient", ev.Coefficient.String()).
		Msg("split applied")
	return nil
}

// handleRebalance allocates the day's capital and collects each strategy's
// signals, in registration order for determinism
func (p *Portfolio) handleRebalance(ev *rebalance.Event) error {
	t := ev.GetTime()
	states := make([]*base.Strategy, 0, len(p.names))
	for _, name := range p.names {
		states = append(states, p.settings[name].State)
	}
	allocated, err := p.allocator.AllocateCapital(t, states, p.history, p.conv)
	if err != nil {
		return err
	}
	if err := p.verifyAllocation(t, allocated); err != nil {
		return err
	}
	for name, capital := range allocated {
		lookup, ok := p.settings[name]
		if !ok {
			return fmt.Errorf("%w: allocator referenced %q", common.ErrStrategyNotFound, name)
		}
		lookup.State.SetTargetCapital(capital)
	}

	for _, name := range p.names {
		lookup := p.settings[name]
		sig, err := lookup.Generator.OnData(t, p.history, lookup.State)
		if err != nil {
			return err
		}
		if sig == nil {
			continue
		}
		p.queue = append(p.queue, sig)
	}
	return nil
}

// verifyAllocation rejects allocators that hand out more capital than the
// portfolio holds
func (p *Portfolio) verifyAllocation(t time.Time, allocated map[string]map[currency.Code]decimal.Decimal) error {
	total, err := p.TotalValue(t)
	if err != nil {
		return err
	}
	sum := decimal.Zero
	for _, capital := range allocated {
		for code, amount := range capital {
			converted, err := p.conv.ToBase(t, amount, code)
			if err != nil {
				return err
			}
			sum = sum.Add(converted)
		}
	}
	// Tolerate rounding dust from decimal division
	if sum.Sub(total).GreaterThan(decimal.New(1, -6)) {
		return fmt.Errorf("%w: %v allocated of %v held", allocation.ErrOverAllocated, sum, total)
	}
	return nil
}

// handleSignal translates a strategy's directional intents into priced
// orders via its sizer and price policy
func (p *Portfolio) handleSignal(ev *signal.Event) error {
	lookup, ok := p.settings[ev.GetStrategyName()]
	if !ok {
		return fmt.Errorf("%w: signal from %q", common.ErrStrategyNotFound, ev.GetStrategyName())
	}
	quantities, err := lookup.Sizer.ComputePositionSizes(ev.GetTime(), ev, lookup.State, p.history, p.conv)
	if err != nil {
		return err
	}
	assets := make([]string, 0, len(quantities))
	for asset := range quantities {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	for _, asset := range assets {
		qty := quantities[asset]
		if qty == 0 {
			continue
		}
		side := order.Buy
		if qty < 0 {
			side = order.Sell
			qty = -qty
		}
		orderType, price, secondary, err := lookup.Prices.CalculateOrderPrice(ev.GetTime(), asset, side, p.history)
		if err != nil {
			if errors.Is(err, data.ErrNoBar) {
				// Same treatment the brokerage gives a missing bar
				continue
			}
			return err
		}
		o, err := order.New(ev.GetTime(), ev.GetStrategyName(), asset, side, orderType, qty, price, secondary)
		if err != nil {
			return err
		}
		p.queue = append(p.queue, o)
	}
	return nil
}

// handleOrder submits to the brokerage. A fill arrives back through the
// OnFill callback and is queued behind any orders already pending
func (p *Portfolio) handleOrder(ctx context.Context, ev *order.Event) error {
	filled, err := p.broker.SubmitOrder(ctx, ev)
	if err != nil {
		return err
	}
	if !filled {
		p.log.Debug().
			Time("date", ev.GetTime()).
			Str("strategy", ev.GetStrategyName()).
			Str("asset", ev.Asset).
			Str("reason", ev.GetReason()).
			Msg("order not filled")
	}
	return nil
}

// handleFill applies an executed trade to the owning strategy's position
// and cash
func (p *Portfolio) handleFill(ev *fill.Event) error {
	lookup, ok := p.settings[ev.GetStrategyName()]
	if !ok {
		return fmt.Errorf("%w: fill for %q", common.ErrStrategyNotFound, ev.GetStrategyName())
	}
	if err := lookup.State.ApplyFill(ev); err != nil {
		return err
	}
	p.log.Info().
		Time("date", ev.GetTime()).
		Str("strategy", ev.GetStrategyName()).
		Str("asset", ev.Asset).
		Str("side", string(ev.Side)).
		Int64("quantity", ev.Quantity).
		Str("price", ev.Price.String()).
		Str("commission", ev.Commission.String()).
		Msg("fill applied")
	return nil
}

// TotalValue sums every strategy's equity converted to the base currency at
// the rates recorded for the date
func (p *Portfolio) TotalValue(t time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, name := range p.names {
		v, err := p.settings[name].State.TotalValue(t, p.conv, p.history)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	return total, nil
}

// EquityCurve returns the recorded valuation series
func (p *Portfolio) EquityCurve() *EquityCurve {
	return p.equity
}

func baseAt(t time.Time) event.Base {
	return event.Base{Time: t}
}
