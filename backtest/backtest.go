package backtest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"portsim/eventhandlers/portfolio"
	"portsim/eventtypes/market"
)

// New builds a backtest over the supplied portfolio and data stream
func New(p *portfolio.Portfolio, stream Streamer, log zerolog.Logger) (*BackTest, error) {
	if p == nil {
		return nil, errNoHandler
	}
	if stream == nil {
		return nil, errNoStream
	}
	return &BackTest{
		portfolio: p,
		stream:    stream,
		log:       log.With().Str("component", "backtest").Logger(),
	}, nil
}

// Run consumes the stream to exhaustion, processing each trading day fully
// before advancing to the next
func (b *BackTest) Run(ctx context.Context) error {
	days := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := b.stream.Next(ctx)
		if errors.Is(err, ErrEndOfData) {
			b.log.Info().Int("days", days).Msg("backtest complete")
			return nil
		}
		if err != nil {
			return fmt.Errorf("market data retrieval: %w", err)
		}
		if err := b.portfolio.OnMarket(ctx, ev); err != nil {
			return err
		}
		days++
	}
}

// SliceStreamer replays a pre-loaded, date-ordered set of market events
type SliceStreamer struct {
	events []*market.Event
	next   int
}

// NewSliceStreamer wraps loaded events in a Streamer
func NewSliceStreamer(events []*market.Event) *SliceStreamer {
	return &SliceStreamer{events: events}
}

// Next returns the next day's event or ErrEndOfData
func (s *SliceStreamer) Next(_ context.Context) (*market.Event, error) {
	if s.next >= len(s.events) {
		return nil, ErrEndOfData
	}
	ev := s.events[s.next]
	s.next++
	return ev, nil
}

// Reset rewinds the stream so a restored portfolio can be replayed
func (s *SliceStreamer) Reset() {
	s.next = 0
}
