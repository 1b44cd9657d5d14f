package backtest

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"portsim/eventhandlers/portfolio"
	"portsim/eventtypes/market"
)

var (
	// ErrEndOfData is returned by a streamer when the date range is
	// exhausted
	ErrEndOfData = errors.New("end of market data")
	errNoStream  = errors.New("market data stream unset")
	errNoHandler = errors.New("portfolio unset")
)

// Streamer supplies market events in date order. Implementations wrap the
// external market data collaborator, CSV files in this repository
type Streamer interface {
	Next(ctx context.Context) (*market.Event, error)
}

// BackTest drives a portfolio through a stream of trading days
type BackTest struct {
	portfolio *portfolio.Portfolio
	stream    Streamer
	log       zerolog.Logger
}
