package base

import (
	"errors"

	"github.com/shopspring/decimal"

	"portsim/currency"
)

var (
	// ErrAssetNotConfigured is returned when an event references an asset
	// the strategy holds no currency mapping for
	ErrAssetNotConfigured = errors.New("asset not configured for strategy")
	errNameUnset          = errors.New("strategy name unset")
	errNoAssets           = errors.New("strategy requires at least one asset")
	errSnapshotMismatch   = errors.New("snapshot does not match strategy")
)

// Strategy is the per-strategy state aggregate: positions, cash balances and
// the capital allocated for the current day. The portfolio owns the
// canonical state, signal generators read it and every mutation goes
// through the Apply methods
type Strategy struct {
	name          string
	assets        map[string]currency.Code
	positions     map[string]int64
	cash          map[currency.Code]decimal.Decimal
	targetCapital map[currency.Code]decimal.Decimal
}

// Snapshot is the serialisable view of a strategy's state, used for
// persistence and resume
type Snapshot struct {
	Name      string                            `json:"name"`
	Positions map[string]int64                  `json:"positions"`
	Cash      map[currency.Code]decimal.Decimal `json:"cash"`
}
