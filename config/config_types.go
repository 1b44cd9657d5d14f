package config

import "errors"

var (
	errNoStrategies     = errors.New("config must define at least one strategy")
	errNoBars           = errors.New("config must point at a bar data file")
	errBaseUnset        = errors.New("config must set a base currency")
	errUnknownAllocator = errors.New("unknown allocator")
	errUnknownPolicy    = errors.New("unknown order policy")
)

// Config is the full runner configuration
type Config struct {
	BaseCurrency string           `mapstructure:"base-currency"`
	RiskFreeRate float64          `mapstructure:"risk-free-rate"`
	Allocator    string           `mapstructure:"allocator"`
	Data         DataConfig       `mapstructure:"data"`
	Strategies   []StrategyConfig `mapstructure:"strategies"`
}

// DataConfig points at the historical input files
type DataConfig struct {
	Bars string `mapstructure:"bars"`
	Fx   string `mapstructure:"fx"`
}

// StrategyConfig wires one strategy: its kind, tradable universe with
// native currencies, sizing weights and opening cash
type StrategyConfig struct {
	Name        string             `mapstructure:"name"`
	Kind        string             `mapstructure:"kind"`
	OrderPolicy string             `mapstructure:"order-policy"`
	PriceOffset float64            `mapstructure:"price-offset"`
	Assets      map[string]string  `mapstructure:"assets"`
	Weights     map[string]float64 `mapstructure:"weights"`
	OpeningCash map[string]float64 `mapstructure:"opening-cash"`
	Params      StrategyParams     `mapstructure:"params"`
}

// StrategyParams carries kind-specific tunables
type StrategyParams struct {
	RebalanceIntervalDays int64 `mapstructure:"rebalance-interval-days"`
	FastPeriod            int   `mapstructure:"fast-period"`
	SlowPeriod            int   `mapstructure:"slow-period"`
}
