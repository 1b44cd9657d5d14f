package allocation

import (
	"time"

	"github.com/shopspring/decimal"

	"portsim/common"
	"portsim/currency"
	"portsim/data"
	"portsim/eventhandlers/strategies/base"
)

// AllocateCapital hands every strategy its own equity by currency
func (s *SelfFunded) AllocateCapital(t time.Time, strategies []*base.Strategy, history *data.History, _ *currency.Converter) (map[string]map[currency.Code]decimal.Decimal, error) {
	if len(strategies) == 0 {
		return nil, errNoStrategies
	}
	if history == nil {
		return nil, common.ErrNilArguments
	}
	out := make(map[string]map[currency.Code]decimal.Decimal, len(strategies))
	for _, strat := range strategies {
		equity, err := strat.EquityByCurrency(t, history)
		if err != nil {
			return nil, err
		}
		out[strat.Name()] = equity
	}
	return out, nil
}

// AllocateCapital converts every strategy's equity to the base currency,
// sums it and assigns an even share to each strategy
func (e *EqualWeight) AllocateCapital(t time.Time, strategies []*base.Strategy, history *data.History, conv *currency.Converter) (map[string]map[currency.Code]decimal.Decimal, error) {
	if len(strategies) == 0 {
		return nil, errNoStrategies
	}
	if history == nil || conv == nil {
		return nil, common.ErrNilArguments
	}
	total := decimal.Zero
	for _, strat := range strategies {
		v, err := strat.TotalValue(t, conv, history)
		if err != nil {
			return nil, err
		}
		total = total.Add(v)
	}
	// Floor division so rounding never allocates more than is held
	share := total.Div(decimal.NewFromInt(int64(len(strategies)))).RoundDown(8)
	out := make(map[string]map[currency.Code]decimal.Decimal, len(strategies))
	for _, strat := range strategies {
		out[strat.Name()] = map[currency.Code]decimal.Decimal{
			conv.Base(): share,
		}
	}
	return out, nil
}
