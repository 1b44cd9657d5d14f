package statistics

import (
	"fmt"
	"io"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"portsim/currency"
	"portsim/eventhandlers/portfolio"
)

// Calculate derives performance statistics from a recorded equity curve.
// riskFreeRate is annualised, for example 0.02 for 2%
func Calculate(curve *portfolio.EquityCurve, base currency.Code, riskFreeRate float64) (*Report, error) {
	points := curve.Points()
	if len(points) < 2 {
		return nil, ErrNotEnoughData
	}

	returns := make([]float64, 0, len(points)-1)
	peak := math.Inf(-1)
	maxDrawdown := 0.0
	prev := 0.0
	for i := range points {
		v, _ := points[i].Value.Float64()
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDrawdown {
				maxDrawdown = dd
			}
		}
		if i > 0 && prev != 0 {
			returns = append(returns, v/prev-1)
		}
		prev = v
	}

	meanDaily := stat.Mean(returns, nil)
	stdDaily := math.Sqrt(stat.Variance(returns, nil))
	annReturn := meanDaily * tradingDaysPerYear
	annVol := stdDaily * math.Sqrt(tradingDaysPerYear)
	sharpe := 0.0
	if annVol > 0 {
		sharpe = (annReturn - riskFreeRate) / annVol
	}

	start, _ := points[0].Value.Float64()
	final, _ := points[len(points)-1].Value.Float64()
	totalReturn := 0.0
	if start != 0 {
		totalReturn = final/start - 1
	}

	return &Report{
		BaseCurrency:     base,
		Start:            points[0].Time,
		End:              points[len(points)-1].Time,
		StartingValue:    points[0].Value,
		FinalValue:       points[len(points)-1].Value,
		TotalReturn:      totalReturn,
		AnnualisedReturn: annReturn,
		Volatility:       annVol,
		SharpeRatio:      sharpe,
		MaxDrawdown:      maxDrawdown,
	}, nil
}

// WriteSummary renders the report in a human readable form
func (r *Report) WriteSummary(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("Period:            %v to %v", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")),
		fmt.Sprintf("Starting equity:   %v", formatMoney(r.StartingValue, r.BaseCurrency)),
		fmt.Sprintf("Final equity:      %v", formatMoney(r.FinalValue, r.BaseCurrency)),
		fmt.Sprintf("Total return:      %.2f%%", r.TotalReturn*100),
		fmt.Sprintf("Annualised return: %.2f%%", r.AnnualisedReturn*100),
		fmt.Sprintf("Volatility:        %.2f%%", r.Volatility*100),
		fmt.Sprintf("Sharpe ratio:      %.2f", r.SharpeRatio),
		fmt.Sprintf("Max drawdown:      %.2f%%", r.MaxDrawdown*100),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatMoney renders a decimal amount with the currency's display rules
func formatMoney(v decimal.Decimal, code currency.Code) string {
	cur := money.GetCurrency(code.String())
	if cur == nil {
		return fmt.Sprintf("%v %v", v.StringFixed(2), code)
	}
	minor := v.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
