package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `base-currency: USD
risk-free-rate: 0.02
allocator: equal-weight
data:
  bars: testdata/bars.csv
  fx: testdata/fx.csv
strategies:
  - name: core
    kind: buyandhold
    assets:
      AAPL: USD
      7203.T: JPY
    weights:
      AAPL: 0.6
      7203.T: 0.4
    opening-cash:
      USD: 10000
  - name: monthly
    kind: rebalance
    order-policy: limit
    price-offset: 0.01
    assets:
      SPY: USD
    weights:
      SPY: 1
    opening-cash:
      USD: 5000
    params:
      rebalance-interval-days: 30
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadConfigFromFile(t *testing.T) {
	cfg, err := ReadConfigFromFile(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, 0.02, cfg.RiskFreeRate)
	assert.Equal(t, AllocatorEqualWeight, cfg.Allocator)
	assert.Equal(t, "testdata/bars.csv", cfg.Data.Bars)
	require.Len(t, cfg.Strategies, 2)

	core := cfg.Strategies[0]
	assert.Equal(t, "buyandhold", core.Kind)
	assert.Equal(t, "JPY", core.Assets["7203.T"])
	assert.Equal(t, 0.6, core.Weights["AAPL"])
	// default applied during validation
	assert.Equal(t, PolicyMarket, core.OrderPolicy)

	monthly := cfg.Strategies[1]
	assert.Equal(t, PolicyLimit, monthly.OrderPolicy)
	assert.Equal(t, int64(30), monthly.Params.RebalanceIntervalDays)
}

func TestReadConfigFromFileMissing(t *testing.T) {
	_, err := ReadConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			BaseCurrency: "USD",
			Allocator:    AllocatorSelfFunded,
			Data:         DataConfig{Bars: "bars.csv"},
			Strategies:   []StrategyConfig{{Name: "core", Kind: "buyandhold"}},
		}
	}

	assert.NoError(t, base().Validate())

	c := base()
	c.BaseCurrency = ""
	assert.ErrorIs(t, c.Validate(), errBaseUnset)

	c = base()
	c.Data.Bars = ""
	assert.ErrorIs(t, c.Validate(), errNoBars)

	c = base()
	c.Strategies = nil
	assert.ErrorIs(t, c.Validate(), errNoStrategies)

	c = base()
	c.Allocator = "martingale"
	assert.ErrorIs(t, c.Validate(), errUnknownAllocator)

	c = base()
	c.Strategies[0].OrderPolicy = "iceberg"
	assert.ErrorIs(t, c.Validate(), errUnknownPolicy)
}
