package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Allocator kinds accepted in config files
const (
	AllocatorSelfFunded  = "self-funded"
	AllocatorEqualWeight = "equal-weight"
)

// Order policy kinds accepted in config files
const (
	PolicyMarket    = "market"
	PolicyLimit     = "limit"
	PolicyStop      = "stop"
	PolicyStopLimit = "stop-limit"
)

// ReadConfigFromFile loads and validates a runner config. The format is
// inferred from the file extension, yaml and json both work
func ReadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("allocator", AllocatorSelfFunded)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %v: %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %v: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config is internally consistent before any engine
// component is built from it
func (c *Config) Validate() error {
	if c.BaseCurrency == "" {
		return errBaseUnset
	}
	if c.Data.Bars == "" {
		return errNoBars
	}
	if len(c.Strategies) == 0 {
		return errNoStrategies
	}
	switch c.Allocator {
	case AllocatorSelfFunded, AllocatorEqualWeight:
	default:
		return fmt.Errorf("%w: %q", errUnknownAllocator, c.Allocator)
	}
	for i := range c.Strategies {
		s := &c.Strategies[i]
		if s.OrderPolicy == "" {
			s.OrderPolicy = PolicyMarket
		}
		switch s.OrderPolicy {
		case PolicyMarket, PolicyLimit, PolicyStop, PolicyStopLimit:
		default:
			return fmt.Errorf("%w: %q in strategy %v", errUnknownPolicy, s.OrderPolicy, s.Name)
		}
	}
	return nil
}
