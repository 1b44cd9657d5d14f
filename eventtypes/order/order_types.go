package order

import (
	"errors"

	"github.com/shopspring/decimal"

	"portsim/eventtypes/event"
)

var (
	// ErrQuantityInvalid is returned when an order is constructed with a
	// non-positive quantity
	ErrQuantityInvalid = errors.New("order quantity must be a positive integer")
	// ErrPriceRequired is returned when a Limit or Stop order is missing its
	// trigger price, or a StopLimit order is missing either leg
	ErrPriceRequired = errors.New("order type requires a price")
	errAssetUnset    = errors.New("order asset unset")
	errUnknownType   = errors.New("unknown order type")
	errUnknownSide   = errors.New("unknown order side")
)

// Side is the trade action of an order
type Side string

const (
	// Buy increases the position
	Buy Side = "BUY"
	// Sell decreases the position
	Sell Side = "SELL"
)

// Type is the execution policy of an order
type Type string

const (
	// Market fills unconditionally at the day's close
	Market Type = "MARKET"
	// Limit fills at the limit price when it is at least as favourable as
	// the close
	Limit Type = "LIMIT"
	// Stop fills at the stop price once the close trades through it
	Stop Type = "STOP"
	// StopLimit requires the stop condition on the primary price and the
	// limit condition on the secondary price simultaneously
	StopLimit Type = "STOP_LIMIT"
)

// Event is a fully specified order ready for submission. Price is the
// limit/stop trigger, SecondaryPrice is the limit leg of a StopLimit
type Event struct {
	event.Base
	ID             string
	Asset          string
	Side           Side
	OrderType      Type
	Quantity       int64
	Price          decimal.Decimal
	SecondaryPrice decimal.Decimal
}
