package common

import (
	"errors"
	"time"
)

var (
	// ErrNilArguments is returned when a handler receives nil arguments
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is returned when a handler receives a nil event
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidDataType is returned when an event is not of the expected concrete type
	ErrInvalidDataType = errors.New("invalid data type received")
	// ErrStrategyNotFound is returned when an event references a strategy
	// the portfolio was never configured with. This is a setup mistake and
	// is never retried
	ErrStrategyNotFound = errors.New("strategy not found")
)

// Event is the smallest interface shared by everything that moves through
// the simulation queue
type Event interface {
	GetTime() time.Time
	GetStrategyName() string
}
