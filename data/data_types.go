package data

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoBar is returned when no bar exists for the requested asset and date
	ErrNoBar = errors.New("no market data for asset at date")
	// ErrInvalidBar is returned when bar construction receives a negative
	// price or volume, or a non-positive split coefficient
	ErrInvalidBar = errors.New("invalid bar")
	// ErrDateOutOfOrder is returned when a day is ingested with a date
	// earlier than the latest recorded day
	ErrDateOutOfOrder = errors.New("market data must be ingested in date order")
)

// Bar is a single daily observation for one asset. Dividend is the cash
// amount paid per share on that date, zero when none. SplitCoefficient is 1
// when no split occurred
type Bar struct {
	Open             decimal.Decimal `json:"open"`
	High             decimal.Decimal `json:"high"`
	Low              decimal.Decimal `json:"low"`
	Close            decimal.Decimal `json:"close"`
	AdjustedClose    decimal.Decimal `json:"adjustedClose"`
	Volume           decimal.Decimal `json:"volume"`
	Dividend         decimal.Decimal `json:"dividend"`
	SplitCoefficient decimal.Decimal `json:"splitCoefficient"`
}

// History is the canonical store of daily bars keyed by date then asset.
// It is owned and mutated exclusively by the portfolio, handlers receive it
// read-only
type History struct {
	dates []time.Time
	bars  map[time.Time]map[string]Bar
}
