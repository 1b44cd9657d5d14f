package allocation

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"portsim/currency"
	"portsim/data"
	"portsim/eventhandlers/strategies/base"
)

var (
	errNoStrategies = errors.New("no strategies to allocate capital across")
	// ErrOverAllocated is returned when an allocator hands out more capital
	// than the portfolio holds
	ErrOverAllocated = errors.New("allocated capital exceeds portfolio capital")
)

// Handler partitions portfolio capital across strategies at the start of
// each simulated day, after corporate actions have been applied. The sum of
// the allocations, converted to the base currency, must not exceed total
// portfolio capital
type Handler interface {
	AllocateCapital(t time.Time, strategies []*base.Strategy, history *data.History, conv *currency.Converter) (map[string]map[currency.Code]decimal.Decimal, error)
}

// SelfFunded allocates each strategy 100% of its own equity. No funds flow
// between strategies
type SelfFunded struct{}

// EqualWeight splits total portfolio equity evenly across strategies in the
// base currency
type EqualWeight struct{}
