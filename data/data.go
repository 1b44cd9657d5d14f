package data

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Day truncates a timestamp to midnight UTC, the granularity every store in
// the engine keys on
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// NewBar validates and builds a daily observation
func NewBar(open, high, low, closePrice, adjClose, volume, dividend, splitCoefficient decimal.Decimal) (Bar, error) {
	for _, p := range []decimal.Decimal{open, high, low, closePrice, adjClose, volume, dividend} {
		if p.IsNegative() {
			return Bar{}, fmt.Errorf("%w: negative price or volume", ErrInvalidBar)
		}
	}
	if splitCoefficient.LessThanOrEqual(decimal.Zero) {
		return Bar{}, fmt.Errorf("%w: split coefficient must be positive", ErrInvalidBar)
	}
	return Bar{
		Open:             open,
		High:             high,
		Low:              low,
		Close:            closePrice,
		AdjustedClose:    adjClose,
		Volume:           volume,
		Dividend:         dividend,
		SplitCoefficient: splitCoefficient,
	}, nil
}

// NewHistory returns an empty bar store
func NewHistory() *History {
	return &History{
		bars: make(map[time.Time]map[string]Bar),
	}
}

// SetDay ingests all bars observed for a date. Dates must arrive in
// non-decreasing order
func (h *History) SetDay(t time.Time, bars map[string]Bar) error {
	t = Day(t)
	if len(h.dates) > 0 && t.Before(h.dates[len(h.dates)-1]) {
		return fmt.Errorf("%w: %v before %v", ErrDateOutOfOrder, t, h.dates[len(h.dates)-1])
	}
	day, ok := h.bars[t]
	if !ok {
		day = make(map[string]Bar, len(bars))
		h.bars[t] = day
		h.dates = append(h.dates, t)
	}
	for asset, bar := range bars {
		day[asset] = bar
	}
	return nil
}

// Bar returns the observation for an asset on a date
func (h *History) Bar(t time.Time, asset string) (Bar, bool) {
	day, ok := h.bars[Day(t)]
	if !ok {
		return Bar{}, false
	}
	bar, ok := day[asset]
	return bar, ok
}

// ClosePrice returns the close for an asset on a date, erroring when absent
func (h *History) ClosePrice(t time.Time, asset string) (decimal.Decimal, error) {
	bar, ok := h.Bar(t, asset)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %v at %v", ErrNoBar, asset, Day(t).Format(time.DateOnly))
	}
	return bar.Close, nil
}

// Dates returns the ordered dates ingested so far
func (h *History) Dates() []time.Time {
	out := make([]time.Time, len(h.dates))
	copy(out, h.dates)
	return out
}

// Latest returns the most recently ingested date
func (h *History) Latest() (time.Time, bool) {
	if len(h.dates) == 0 {
		return time.Time{}, false
	}
	return h.dates[len(h.dates)-1], true
}

// CloseSeries returns the ordered close prices for an asset up to and
// including the given date, skipping days the asset did not trade. Used to
// feed indicator calculations
func (h *History) CloseSeries(asset string, until time.Time) []float64 {
	until = Day(until)
	var out []float64
	for _, d := range h.dates {
		if d.After(until) {
			break
		}
		if bar, ok := h.bars[d][asset]; ok {
			f, _ := bar.Close.Float64()
			out = append(out, f)
		}
	}
	return out
}

// ApplySplit rescales every recorded bar for an asset by the split
// coefficient: prices divided, volume multiplied. Applied across the full
// history so that backward-looking calculations remain continuous after the
// split
func (h *History) ApplySplit(asset string, coefficient decimal.Decimal) error {
	if coefficient.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: split coefficient must be positive", ErrInvalidBar)
	}
	for _, d := range h.dates {
		bar, ok := h.bars[d][asset]
		if !ok {
			continue
		}
		bar.Open = bar.Open.Div(coefficient)
		bar.High = bar.High.Div(coefficient)
		bar.Low = bar.Low.Div(coefficient)
		bar.Close = bar.Close.Div(coefficient)
		bar.AdjustedClose = bar.AdjustedClose.Div(coefficient)
		bar.Volume = bar.Volume.Mul(coefficient)
		h.bars[d][asset] = bar
	}
	return nil
}
