package fill

import (
	"github.com/shopspring/decimal"

	"portsim/eventtypes/event"
	"portsim/eventtypes/order"
)

// Event records an executed trade. At most one fill is produced per
// accepted order, the simulation has no partial fills
type Event struct {
	event.Base
	OrderID    string
	Asset      string
	Side       order.Side
	Quantity   int64
	Price      decimal.Decimal
	Commission decimal.Decimal
}

// Value returns price multiplied by quantity, excluding commission
func (e *Event) Value() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(e.Quantity))
}

// SignedQuantity returns the quantity with the side applied, negative for
// sells
func (e *Event) SignedQuantity() int64 {
	if e.Side == order.Sell {
		return -e.Quantity
	}
	return e.Quantity
}
