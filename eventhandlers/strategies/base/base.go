package base

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"portsim/currency"
	"portsim/data"
	"portsim/eventtypes/fill"
)

// NewStrategy builds a strategy aggregate with its tradable universe and
// opening cash balances
func NewStrategy(name string, assets map[string]currency.Code, openingCash map[currency.Code]decimal.Decimal) (*Strategy, error) {
	if name == "" {
		return nil, errNameUnset
	}
	if len(assets) == 0 {
		return nil, errNoAssets
	}
	s := &Strategy{
		name:          name,
		assets:        make(map[string]currency.Code, len(assets)),
		positions:     make(map[string]int64),
		cash:          make(map[currency.Code]decimal.Decimal),
		targetCapital: make(map[currency.Code]decimal.Decimal),
	}
	for asset, code := range assets {
		s.assets[asset] = code
	}
	for code, amount := range openingCash {
		s.cash[code] = amount
	}
	return s, nil
}

// Name returns the strategy's unique name
func (s *Strategy) Name() string {
	return s.name
}

// Assets returns the tradable universe in deterministic order
func (s *Strategy) Assets() []string {
	out := make([]string, 0, len(s.assets))
	for asset := range s.assets {
		out = append(out, asset)
	}
	sort.Strings(out)
	return out
}

// AssetCurrency returns the native currency an asset trades in
func (s *Strategy) AssetCurrency(asset string) (currency.Code, error) {
	code, ok := s.assets[asset]
	if !ok {
		return "", fmt.Errorf("%w: %v in %v", ErrAssetNotConfigured, asset, s.name)
	}
	return code, nil
}

// Position returns the signed share count held for an asset
func (s *Strategy) Position(asset string) int64 {
	return s.positions[asset]
}

// Positions returns a copy of all non-zero positions
func (s *Strategy) Positions() map[string]int64 {
	out := make(map[string]int64, len(s.positions))
	for asset, qty := range s.positions {
		if qty != 0 {
			out[asset] = qty
		}
	}
	return out
}

// Cash returns the balance held in a currency
func (s *Strategy) Cash(code currency.Code) decimal.Decimal {
	return s.cash[code]
}

// CashBalances returns a copy of all cash balances
func (s *Strategy) CashBalances() map[currency.Code]decimal.Decimal {
	out := make(map[currency.Code]decimal.Decimal, len(s.cash))
	for code, amount := range s.cash {
		out[code] = amount
	}
	return out
}

// SetTargetCapital stores the capital the allocator assigned for the current
// day, replacing the previous day's figures
func (s *Strategy) SetTargetCapital(capital map[currency.Code]decimal.Decimal) {
	s.targetCapital = make(map[currency.Code]decimal.Decimal, len(capital))
	for code, amount := range capital {
		s.targetCapital[code] = amount
	}
}

// TargetCapital returns the capital allocated for the current day in a
// currency
func (s *Strategy) TargetCapital(code currency.Code) decimal.Decimal {
	return s.targetCapital[code]
}

// TargetCapitalBalances returns a copy of the full day's allocation
func (s *Strategy) TargetCapitalBalances() map[currency.Code]decimal.Decimal {
	out := make(map[currency.Code]decimal.Decimal, len(s.targetCapital))
	for code, amount := range s.targetCapital {
		out[code] = amount
	}
	return out
}

// ApplyFill updates position and cash for an executed trade. The cash leg is
// settled in the asset's native currency
func (s *Strategy) ApplyFill(f *fill.Event) error {
	if f == nil {
		return fmt.Errorf("apply fill: nil event")
	}
	code, err := s.AssetCurrency(f.Asset)
	if err != nil {
		return err
	}
	s.positions[f.Asset] += f.SignedQuantity()
	signedValue := f.Price.Mul(decimal.NewFromInt(f.SignedQuantity()))
	s.cash[code] = s.cash[code].Sub(signedValue).Sub(f.Commission)
	return nil
}

// ApplyDividend credits dividendPerShare multiplied by the held quantity to
// the cash balance in the asset's native currency. Short positions are
// debited
func (s *Strategy) ApplyDividend(asset string, perShare decimal.Decimal) error {
	qty, ok := s.positions[asset]
	if !ok || qty == 0 {
		return nil
	}
	code, err := s.AssetCurrency(asset)
	if err != nil {
		return err
	}
	s.cash[code] = s.cash[code].Add(perShare.Mul(decimal.NewFromInt(qty)))
	return nil
}

// ApplySplit rescales the held quantity by the split coefficient, rounding
// to the nearest whole share
func (s *Strategy) ApplySplit(asset string, coefficient decimal.Decimal) {
	qty, ok := s.positions[asset]
	if !ok || qty == 0 {
		return
	}
	s.positions[asset] = decimal.NewFromInt(qty).Mul(coefficient).Round(0).IntPart()
}

// EquityByCurrency values positions at the day's close plus cash, grouped by
// native currency. A held asset with no bar for the date is a hard error,
// valuing it with stale data would silently misstate equity
func (s *Strategy) EquityByCurrency(t time.Time, h *data.History) (map[currency.Code]decimal.Decimal, error) {
	out := make(map[currency.Code]decimal.Decimal, len(s.cash))
	for code, amount := range s.cash {
		out[code] = amount
	}
	for _, asset := range s.Assets() {
		qty := s.positions[asset]
		if qty == 0 {
			continue
		}
		price, err := h.ClosePrice(t, asset)
		if err != nil {
			return nil, fmt.Errorf("valuing %v: %w", s.name, err)
		}
		code := s.assets[asset]
		out[code] = out[code].Add(price.Mul(decimal.NewFromInt(qty)))
	}
	return out, nil
}

// TotalValue converts the strategy's equity into the base currency at the
// rates recorded for the date
func (s *Strategy) TotalValue(t time.Time, conv *currency.Converter, h *data.History) (decimal.Decimal, error) {
	equity, err := s.EquityByCurrency(t, h)
	if err != nil {
		return decimal.Zero, err
	}
	codes := make([]currency.Code, 0, len(equity))
	for code := range equity {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	total := decimal.Zero
	for _, code := range codes {
		converted, err := conv.ToBase(t, equity[code], code)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(converted)
	}
	return total, nil
}

// Snapshot captures positions and cash for persistence
func (s *Strategy) Snapshot() Snapshot {
	return Snapshot{
		Name:      s.name,
		Positions: s.Positions(),
		Cash:      s.CashBalances(),
	}
}

// RestoreSnapshot replaces positions and cash with a previously captured
// snapshot
func (s *Strategy) RestoreSnapshot(snap Snapshot) error {
	if snap.Name != s.name {
		return fmt.Errorf("%w: snapshot for %v applied to %v", errSnapshotMismatch, snap.Name, s.name)
	}
	s.positions = make(map[string]int64, len(snap.Positions))
	for asset, qty := range snap.Positions {
		if _, ok := s.assets[asset]; !ok {
			return fmt.Errorf("%w: %v in snapshot", ErrAssetNotConfigured, asset)
		}
		s.positions[asset] = qty
	}
	s.cash = make(map[currency.Code]decimal.Decimal, len(snap.Cash))
	for code, amount := range snap.Cash {
		s.cash[code] = amount
	}
	return nil
}
