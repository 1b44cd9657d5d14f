package currency

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NewRateHistory returns an empty FX rate table
func NewRateHistory() *RateHistory {
	return &RateHistory{
		rates: make(map[time.Time]map[Code]decimal.Decimal),
	}
}

// SetRates records the rates observed for a date. Dates must arrive in
// non-decreasing order, matching the market data key space
func (r *RateHistory) SetRates(t time.Time, rates map[Code]decimal.Decimal) error {
	t = t.UTC().Truncate(24 * time.Hour)
	if len(r.dates) > 0 && t.Before(r.dates[len(r.dates)-1]) {
		return fmt.Errorf("%w: %v before %v", errDateOutOfOrder, t, r.dates[len(r.dates)-1])
	}
	for c, rate := range rates {
		if !rate.IsPositive() {
			return fmt.Errorf("%w: %v is %v on %v", errRateInvalid, c, rate, t.Format(time.DateOnly))
		}
	}
	day, ok := r.rates[t]
	if !ok {
		day = make(map[Code]decimal.Decimal, len(rates))
		r.rates[t] = day
		r.dates = append(r.dates, t)
	}
	for c, rate := range rates {
		day[c] = rate
	}
	return nil
}

// Rate returns the rate recorded for a currency on the exact date requested
func (r *RateHistory) Rate(t time.Time, c Code) (decimal.Decimal, error) {
	if c.IsEmpty() {
		return decimal.Zero, errEmptyCode
	}
	day, ok := r.rates[t.UTC().Truncate(24*time.Hour)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rates for %v", ErrRateUnavailable, t.Format(time.DateOnly))
	}
	rate, ok := day[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %v on %v", ErrRateUnavailable, c, t.Format(time.DateOnly))
	}
	return rate, nil
}

// NewConverter creates a conversion service quoting against the supplied
// base currency
func NewConverter(base Code, rates *RateHistory) (*Converter, error) {
	if base.IsEmpty() {
		return nil, errBaseUnset
	}
	if rates == nil {
		return nil, errRatesUnset
	}
	return &Converter{base: base, rates: rates}, nil
}

// Base returns the converter's base currency
func (c *Converter) Base() Code {
	return c.base
}

// Convert translates amount from one currency into another at the rate
// recorded for the given date
func (c *Converter) Convert(t time.Time, amount decimal.Decimal, from, to Code) (decimal.Decimal, error) {
	if from.IsEmpty() || to.IsEmpty() {
		return decimal.Zero, errEmptyCode
	}
	if from == to {
		return amount, nil
	}
	inBase := amount
	if from != c.base {
		rate, err := c.rates.Rate(t, from)
		if err != nil {
			return decimal.Zero, err
		}
		inBase = amount.Div(rate)
	}
	if to == c.base {
		return inBase, nil
	}
	rate, err := c.rates.Rate(t, to)
	if err != nil {
		return decimal.Zero, err
	}
	return inBase.Mul(rate), nil
}

// ToBase is a convenience wrapper converting into the base currency
func (c *Converter) ToBase(t time.Time, amount decimal.Decimal, from Code) (decimal.Decimal, error) {
	return c.Convert(t, amount, from, c.base)
}
