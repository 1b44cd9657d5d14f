package orderprice

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"portsim/data"
	"portsim/eventtypes/order"
)

var (
	errOffsetInvalid = errors.New("price offset must be non-negative")
)

// Handler decides, for one signalled trade, the order type and its price
// legs. Returning a Market type leaves both prices at zero
type Handler interface {
	CalculateOrderPrice(t time.Time, asset string, side order.Side, history *data.History) (order.Type, decimal.Decimal, decimal.Decimal, error)
}

// MarketPolicy always submits market orders
type MarketPolicy struct{}

// LimitPolicy submits limit orders offset from the day's close by a
// fraction: buys above close, sells below, so the limit is at least as
// favourable as the close and fills under the end-of-day model
type LimitPolicy struct {
	offset decimal.Decimal
}

// StopPolicy submits stop orders offset from the day's close by a fraction:
// buy stops below close, sell stops above
type StopPolicy struct {
	offset decimal.Decimal
}

// StopLimitPolicy submits stop-limit orders with the stop leg at the close
// and the limit leg offset beyond it
type StopLimitPolicy struct {
	offset decimal.Decimal
}
