package market

import (
	"github.com/shopspring/decimal"

	"portsim/currency"
	"portsim/data"
	"portsim/eventtypes/event"
)

// Event carries one trading day's observations: every asset's bar plus the
// FX rates recorded for the same date
type Event struct {
	event.Base
	Bars  map[string]data.Bar
	Rates map[currency.Code]decimal.Decimal
}
