package strategies

import (
	"errors"
	"time"

	"portsim/data"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventtypes/signal"
)

var (
	// ErrStrategyNotSupported is returned when a requested strategy kind is
	// not registered
	ErrStrategyNotSupported = errors.New("strategy kind not supported")
)

// Handler generates trading signals for one strategy each simulated day.
// Implementations read the strategy aggregate and history but never mutate
// them, state changes happen only through fills applied by the portfolio
type Handler interface {
	Name() string
	OnData(t time.Time, history *data.History, strategy *base.Strategy) (*signal.Event, error)
}
