package currency

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrRateUnavailable is returned when no FX rate exists for the exact
	// requested date. Rates are never forward or backward filled, a stale
	// substitute would silently misstate valuations
	ErrRateUnavailable = errors.New("fx rate unavailable")
	errEmptyCode       = errors.New("currency code unset")
	errRateInvalid     = errors.New("fx rate must be positive")
	errBaseUnset       = errors.New("base currency unset")
	errRatesUnset      = errors.New("rate history unset")
	errDateOutOfOrder  = errors.New("fx rates must be recorded in date order")
)

// RateHistory holds per-date FX rates, expressed as units of the quoted
// currency per unit of the portfolio base currency
type RateHistory struct {
	dates []time.Time
	rates map[time.Time]map[Code]decimal.Decimal
}

// Converter translates amounts between currencies using the rates recorded
// for a specific date
type Converter struct {
	base  Code
	rates *RateHistory
}
