package portfolio

import (
	"errors"

	"github.com/rs/zerolog"

	"portsim/common"
	"portsim/currency"
	"portsim/data"
	"portsim/eventhandlers/allocation"
	"portsim/eventhandlers/brokerage"
	"portsim/eventhandlers/orderprice"
	"portsim/eventhandlers/size"
	"portsim/eventhandlers/strategies"
	"portsim/eventhandlers/strategies/base"
)

var (
	// ErrDateBeforeLast is returned when a market event or equity write
	// carries a date earlier than the last recorded equity point. Events
	// are never silently reordered
	ErrDateBeforeLast    = errors.New("date precedes last recorded equity point")
	errBrokerageUnset    = errors.New("brokerage unset")
	errAllocatorUnset    = errors.New("capital allocator unset")
	errBaseCurrencyUnset = errors.New("base currency unset")
	errSnapshotCurrency  = errors.New("snapshot base currency mismatch")
	errDuplicateStrategy = errors.New("strategy already registered")
	errNoStrategies      = errors.New("portfolio has no strategies")
	errSizerUnset        = errors.New("position sizer unset")
	errPricePolicyUnset  = errors.New("order price policy unset")
	errGeneratorUnset    = errors.New("signal generator unset")
)

// Settings wires one strategy's state aggregate to its pluggable signal
// generator, position sizer and order price policy
type Settings struct {
	State     *base.Strategy
	Generator strategies.Handler
	Sizer     size.Handler
	Prices    orderprice.Handler
}

// Portfolio sequences every state transition of a simulated trading day:
// ingest, corporate actions, capital allocation, signal routing, fills and
// valuation. It exclusively owns the historical data, the equity curve and
// each strategy's state
type Portfolio struct {
	baseCurrency currency.Code
	history      *data.History
	rates        *currency.RateHistory
	conv         *currency.Converter
	broker       brokerage.Brokerage
	allocator    allocation.Handler
	names        []string
	settings     map[string]*Settings
	equity       *EquityCurve
	queue        []common.Event
	log          zerolog.Logger
}
