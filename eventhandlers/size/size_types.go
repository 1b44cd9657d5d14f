package size

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"portsim/currency"
	"portsim/data"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventtypes/signal"
)

var (
	// ErrWeightNotConfigured is returned when a signalled asset has no
	// configured weight. Silently sizing to zero would hide a setup mistake
	ErrWeightNotConfigured = errors.New("no weight configured for asset")
	errNoWeights           = errors.New("sizer requires at least one weight")
	errWeightInvalid       = errors.New("weights must be positive")
)

// Handler turns a day's signals into signed share quantities: positive to
// buy, negative to sell. Implementations must be pure functions of their
// inputs so backtests replay deterministically
type Handler interface {
	ComputePositionSizes(t time.Time, sig *signal.Event, strategy *base.Strategy, history *data.History, conv *currency.Converter) (map[string]int64, error)
}

// Weighted sizes each asset to a fixed fraction of the strategy's target
// capital in the asset's native currency
type Weighted struct {
	weights map[string]decimal.Decimal
}
