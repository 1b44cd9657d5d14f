package size

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"portsim/common"
	"portsim/currency"
	"portsim/data"
	"portsim/eventhandlers/strategies/base"
	"portsim/eventtypes/signal"
)

// NewWeighted validates per-asset weights and builds the sizer
func NewWeighted(weights map[string]decimal.Decimal) (*Weighted, error) {
	if len(weights) == 0 {
		return nil, errNoWeights
	}
	w := make(map[string]decimal.Decimal, len(weights))
	for asset, weight := range weights {
		if weight.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %v has %v", errWeightInvalid, asset, weight)
		}
		w[asset] = weight
	}
	return &Weighted{weights: w}, nil
}

// ComputePositionSizes resolves each signalled asset to a signed share
// delta. Long and Short size to weight multiplied by target capital, Exit
// unwinds the held quantity and Rebalance moves the position to its target
// weight
func (w *Weighted) ComputePositionSizes(t time.Time, sig *signal.Event, strategy *base.Strategy, history *data.History, conv *currency.Converter) (map[string]int64, error) {
	if sig == nil || strategy == nil || history == nil || conv == nil {
		return nil, common.ErrNilArguments
	}
	assets := make([]string, 0, len(sig.Directions))
	for asset := range sig.Directions {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	out := make(map[string]int64, len(assets))
	for _, asset := range assets {
		direction := sig.Directions[asset]
		held := strategy.Position(asset)
		if direction == signal.Exit {
			if held != 0 {
				out[asset] = -held
			}
			continue
		}
		weight, ok := w.weights[asset]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrWeightNotConfigured, asset)
		}
		price, err := history.ClosePrice(t, asset)
		if err != nil {
			// No bar today. The brokerage treats missing data as an
			// unfilled order, skipping here keeps the two consistent
			continue
		}
		if price.IsZero() {
			continue
		}
		code, err := strategy.AssetCurrency(asset)
		if err != nil {
			return nil, err
		}
		capital, err := targetCapitalIn(t, code, strategy, conv)
		if err != nil {
			return nil, err
		}
		desired := weight.Mul(capital).Div(price).Floor().IntPart()
		switch direction {
		case signal.Long:
			if desired > 0 {
				out[asset] = desired
			}
		case signal.Short:
			if desired > 0 {
				out[asset] = -desired
			}
		case signal.Rebalance:
			if delta := desired - held; delta != 0 {
				out[asset] = delta
			}
		}
	}
	return out, nil
}

// targetCapitalIn converts the strategy's full allocated capital into one
// currency so weights always apply against the same sizing basis regardless
// of which currencies the allocator paid out in
func targetCapitalIn(t time.Time, code currency.Code, strategy *base.Strategy, conv *currency.Converter) (decimal.Decimal, error) {
	total := decimal.Zero
	for heldCode, amount := range strategy.TargetCapitalBalances() {
		if amount.IsZero() {
			continue
		}
		converted, err := conv.Convert(t, amount, heldCode, code)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(converted)
	}
	return total, nil
}
