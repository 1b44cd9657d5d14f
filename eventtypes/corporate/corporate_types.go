package corporate

import (
	"github.com/shopspring/decimal"

	"portsim/eventtypes/event"
)

// DividendEvent is raised when a day's bar carries a per-share cash
// dividend. Each holding strategy is credited in the asset's native
// currency
type DividendEvent struct {
	event.Base
	Asset  string
	Amount decimal.Decimal
}

// SplitEvent is raised when a day's bar carries a split coefficient other
// than one. Position counts are multiplied by the coefficient, historical
// prices divided by it
type SplitEvent struct {
	event.Base
	Asset       string
	Coefficient decimal.Decimal
}
