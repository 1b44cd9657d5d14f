package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portsim/data"
)

// Point is one equity observation in the portfolio base currency
type Point struct {
	Time  time.Time       `json:"time"`
	Value decimal.Decimal `json:"value"`
}

// EquityCurve is the ordered series of daily portfolio valuations. Keys are
// non-decreasing in insertion order, a write dated before the last entry is
// rejected and entries are never mutated once recorded
type EquityCurve struct {
	points []Point
}

// Add appends a valuation for a date
func (c *EquityCurve) Add(t time.Time, value decimal.Decimal) error {
	t = data.Day(t)
	if len(c.points) > 0 {
		if last := c.points[len(c.points)-1].Time; t.Before(last) {
			return fmt.Errorf("%w: %v before %v",
				ErrDateBeforeLast,
				t.Format(time.DateOnly),
				last.Format(time.DateOnly))
		}
	}
	c.points = append(c.points, Point{Time: t, Value: value})
	return nil
}

// Last returns the most recent equity point
func (c *EquityCurve) Last() (Point, bool) {
	if len(c.points) == 0 {
		return Point{}, false
	}
	return c.points[len(c.points)-1], true
}

// Points returns a copy of the recorded curve
func (c *EquityCurve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// Len returns the number of recorded points
func (c *EquityCurve) Len() int {
	return len(c.points)
}
