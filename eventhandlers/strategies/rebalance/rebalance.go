package rebalance

import (
	"errors"
	"time"

	"portsim/common"
	"portsim/data"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventtypes/event"
	"portsim/eventtypes/signal"
)

// Name is the strategy kind
const Name = "rebalance"

var errIntervalInvalid = errors.New("rebalance interval must be positive")

// Strategy realigns every asset to its target weight once per interval,
// counted in calendar days. The schedule is a pure function of the date so
// a resumed simulation rebalances on the same days as an uninterrupted one
type Strategy struct {
	interval int64
}

// New builds a periodic rebalancing strategy. An interval of 30 rebalances
// roughly monthly
func New(interval int64) (*Strategy, error) {
	if interval <= 0 {
		return nil, errIntervalInvalid
	}
	return &Strategy{interval: interval}, nil
}

// Name returns the strategy kind
func (s *Strategy) Name() string {
	return Name
}

// OnData emits Rebalance signals on dates falling on the interval boundary
func (s *Strategy) OnData(t time.Time, history *data.History, strategy *base.Strategy) (*signal.Event, error) {
	if history == nil || strategy == nil {
		return nil, common.ErrNilArguments
	}
	epochDays := data.Day(t).Unix() / 86400
	if epochDays%s.interval != 0 {
		return nil, nil
	}
	directions := make(map[string]signal.Type)
	for _, asset := range strategy.Assets() {
		if _, ok := history.Bar(t, asset); !ok {
			continue
		}
		directions[asset] = signal.Rebalance
	}
	if len(directions) == 0 {
		return nil, nil
	}
	return &signal.Event{
		Base: event.Base{
			Time:     t,
			Strategy: strategy.Name(),
		},
		Directions: directions,
	}, nil
}
