package statistics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"portsim/currency"
)

var (
	// ErrNotEnoughData is returned when the equity curve has fewer than two
	// points, no return series can be computed
	ErrNotEnoughData = errors.New("equity curve too short for statistics")
)

// tradingDaysPerYear is the annualisation factor for daily observations
const tradingDaysPerYear = 252

// Report summarises an equity curve
type Report struct {
	BaseCurrency     currency.Code
	Start            time.Time
	End              time.Time
	StartingValue    decimal.Decimal
	FinalValue       decimal.Decimal
	TotalReturn      float64
	AnnualisedReturn float64
	Volatility       float64
	SharpeRatio      float64
	MaxDrawdown      float64
}
