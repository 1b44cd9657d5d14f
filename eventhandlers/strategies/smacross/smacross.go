package smacross

import (
	"errors"
	"fmt"
	"time"

	"github.com/thrasher-corp/gct-ta/indicators"

	"portsim/common"
	"portsim/data"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventtypes/event"
	"portsim/eventtypes/signal"
)

// Name is the strategy kind
const Name = "smacross"

var errPeriodsInvalid = errors.New("fast period must be positive and below slow period")

// Strategy trades a classic moving average crossover: long while the fast
// simple moving average sits above the slow one, flat otherwise
type Strategy struct {
	fast int
	slow int
}

// New builds an SMA crossover strategy
func New(fast, slow int) (*Strategy, error) {
	if fast <= 0 || fast >= slow {
		return nil, fmt.Errorf("%w: fast %v slow %v", errPeriodsInvalid, fast, slow)
	}
	return &Strategy{fast: fast, slow: slow}, nil
}

// Name returns the strategy kind
func (s *Strategy) Name() string {
	return Name
}

// OnData compares the fast and slow averages over the close series and
// signals Long on a bullish posture, Exit on a bearish one. Assets without
// enough history yet produce no signal
func (s *Strategy) OnData(t time.Time, history *data.History, strategy *base.Strategy) (*signal.Event, error) {
	if history == nil || strategy == nil {
		return nil, common.ErrNilArguments
	}
	directions := make(map[string]signal.Type)
	for _, asset := range strategy.Assets() {
		if _, ok := history.Bar(t, asset); !ok {
			continue
		}
		closes := history.CloseSeries(asset, t)
		if len(closes) < s.slow {
			continue
		}
		fastMA := indicators.SMA(closes, s.fast)
		slowMA := indicators.SMA(closes, s.slow)
		bullish := fastMA[len(fastMA)-1] > slowMA[len(slowMA)-1]
		held := strategy.Position(asset)
		switch {
		case bullish && held == 0:
			directions[asset] = signal.Long
		case !bullish && held != 0:
			directions[asset] = signal.Exit
		}
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
