package order

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"portsim/eventtypes/event"
)

// New validates and constructs an order. Malformed orders are rejected here
// and never reach the brokerage
func New(t time.Time, strategy, asset string, side Side, orderType Type, quantity int64, price, secondaryPrice decimal.Decimal) (*Event, error) {
	if asset == "" {
		return nil, errAssetUnset
	}
	if side != Buy && side != Sell {
		return nil, fmt.Errorf("%w: %q", errUnknownSide, side)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrQuantityInvalid, quantity)
	}
	switch orderType {
	case Market:
	case Limit, Stop:
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %v needs a primary price", ErrPriceRequired, orderType)
		}
	case StopLimit:
		if price.LessThanOrEqual(decimal.Zero) || secondaryPrice.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %v needs primary and secondary prices", ErrPriceRequired, orderType)
		}
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownType, orderType)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Event{
		Base: event.Base{
			Time:     t,
			Strategy: strategy,
		},
		ID:             id.String(),
		Asset:          asset,
		Side:           side,
		OrderType:      orderType,
		Quantity:       quantity,
		Price:          price,
		SecondaryPrice: secondaryPrice,
	}, nil
}

// SignedQuantity returns the quantity with the side applied, negative for
// sells
func (e *Event) SignedQuantity() int64 {
	if e.Side == Sell {
		return -e.Quantity
	}
	return e.Quantity
}
