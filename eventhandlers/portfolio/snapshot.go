package portfolio

import (
	"encoding/json"
	"fmt"

	"portsim/common"
	"portsim/currency"
	"portsim/eventhandlers/strategies/base"
)

// Snapshot captures the portfolio's replayable state: every strategy's
// positions and cash plus the equity curve recorded so far. Feeding the
// remaining market events to a restored portfolio reproduces the identical
// curve the uninterrupted run would have produced
type Snapshot struct {
	BaseCurrency currency.Code   `json:"baseCurrency"`
	Strategies   []base.Snapshot `json:"strategies"`
	Equity       []Point         `json:"equity"`
}

// Snapshot captures the current state
func (p *Portfolio) Snapshot() *Snapshot {
	snap := &Snapshot{
		BaseCurrency: p.baseCurrency,
		Strategies:   make([]base.Snapshot, 0, len(p.names)),
		Equity:       p.equity.Points(),
	}
	for _, name := range p.names {
		snap.Strategies = append(snap.Strategies, p.settings[name].State.Snapshot())
	}
	return snap
}

// RestoreSnapshot replaces strategy state and the equity curve with a
// previously captured snapshot. The portfolio must already be configured
// with the same strategies
func (p *Portfolio) RestoreSnapshot(snap *Snapshot) error {
	if snap == nil {
		return common.ErrNilArguments
	}
	if snap.BaseCurrency != p.baseCurrency {
		return fmt.Errorf("%w: snapshot in %v, portfolio in %v",
			errSnapshotCurrency, snap.BaseCurrency, p.baseCurrency)
	}
	for i := range snap.Strategies {
		lookup, ok := p.settings[snap.Strategies[i].Name]
		if !ok {
			return fmt.Errorf("%w: snapshot strategy %q", common.ErrStrategyNotFound, snap.Strategies[i].Name)
		}
		if err := lookup.State.RestoreSnapshot(snap.Strategies[i]); err != nil {
			return err
		}
	}
	p.equity = &EquityCurve{points: append([]Point(nil), snap.Equity...)}
	return nil
}

// MarshalSnapshot serialises the current state to JSON
func (p *Portfolio) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(p.Snapshot())
}

// UnmarshalSnapshot restores state from JSON produced by MarshalSnapshot
func (p *Portfolio) UnmarshalSnapshot(b []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return err
	}
	return p.RestoreSnapshot(&snap)
}
