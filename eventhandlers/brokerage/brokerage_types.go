package brokerage

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"portsim/data"
	"portsim/eventtypes/fill"
	"portsim/eventtypes/order"
)

// CommissionRate is the fixed commission applied to every fill, 10 basis
// points of traded value
var CommissionRate = decimal.New(1, -3)

// Brokerage accepts orders and reports whether they filled, notifying the
// registered callback of every fill. A live venue adapter would satisfy the
// same interface
type Brokerage interface {
	SubmitOrder(ctx context.Context, o *order.Event) (bool, error)
	OnFill(func(*fill.Event))
}

// Simulated fills orders against the single daily bar recorded for the
// order's date. No partial fills and no resting orders: an order fills on
// its bar or is reported unfilled
type Simulated struct {
	history *data.History
	onFill  func(*fill.Event)
	log     zerolog.Logger
}
