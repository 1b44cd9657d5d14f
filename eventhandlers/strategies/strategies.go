package strategies

import (
	"fmt"

	"portsim/eventhandlers/strategies/buyandhold"
	"portsim/eventhandlers/strategies/rebalance"
	"portsim/eventhandlers/strategies/smacross"
)

// Params carries the tunables a config file may set per strategy kind
type Params struct {
	RebalanceIntervalDays int64
	FastPeriod            int
	SlowPeriod            int
}

// LoadStrategyByName returns a signal generator for the requested kind
func LoadStrategyByName(kind string, params Params) (Handler, error) {
	switch kind {
	case buyandhold.Name:
		return &buyandhold.Strategy{}, nil
	case rebalance.Name:
		interval := params.RebalanceIntervalDays
		if interval == 0 {
			interval = 30
		}
		return rebalance.New(interval)
	case smacross.Name:
		fast, slow := params.FastPeriod, params.SlowPeriod
		if fast == 0 && slow == 0 {
			fast, slow = 20, 50
		}
		return smacross.New(fast, slow)
	default:
		return nil, fmt.Errorf("%w: %q", ErrStrategyNotSupported, kind)
	}
}
