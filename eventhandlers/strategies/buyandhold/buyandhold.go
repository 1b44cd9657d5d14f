package buyandhold

import (
	"time"

	"portsim/common"
	"portsim/data"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventtypes/event"
	"portsim/eventtypes/signal"
)

// Name is the strategy kind
const Name = "buyandhold"

// Strategy goes long every configured asset the first day it trades and
// holds for the remainder of the simulation
type Strategy struct{}

// Name returns the strategy kind
func (s *Strategy) Name() string {
	return Name
}

// OnData emits a Long signal for every asset that has a bar today and no
// position yet
func (s *Strategy) OnData(t time.Time, history *data.History, strategy *base.Strategy) (*signal.Event, error) {
	if history == nil || strategy == nil {
		return nil, common.ErrNilArguments
	}
	directions := make(map[string]signal.Type)
	for _, asset := range strategy.Assets() {
		if strategy.Position(asset) != 0 {
			continue
		}
		if _, ok := history.Bar(t, asset); !ok {
			continue
		}
		directions[asset] = signal.Long
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
