package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

func setupConverter(t *testing.T) *Converter {
	t.Helper()
	rates := NewRateHistory()
	require.NoError(t, rates.SetRates(testDay, map[Code]decimal.Decimal{
		JPY: decimal.NewFromInt(110),
		EUR: decimal.NewFromFloat(0.8),
	}))
	conv, err := NewConverter(USD, rates)
	require.NoError(t, err)
	return conv
}

func TestConvertToBase(t *testing.T) {
	conv := setupConverter(t)
	got, err := conv.Convert(testDay, decimal.NewFromInt(11000), JPY, USD)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "got %v", got)
}

func TestConvertFromBase(t *testing.T) {
	conv := setupConverter(t)
	got, err := conv.Convert(testDay, decimal.NewFromInt(100), USD, JPY)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(11000)), "got %v", got)
}

func TestConvertCrossRate(t *testing.T) {
	conv := setupConverter(t)
	// 11000 JPY -> 100 USD -> 80 EUR
	got, err := conv.Convert(testDay, decimal.NewFromInt(11000), JPY, EUR)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(80)), "got %v", got)
}

func TestConvertSameCurrency(t *testing.T) {
	conv := setupConverter(t)
	got, err := conv.Convert(testDay, decimal.NewFromInt(42), GBP, GBP)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(42)))
}

func TestMissingRateIsHardError(t *testing.T) {
	conv := setupConverter(t)
	_, err := conv.Convert(testDay, decimal.NewFromInt(1), GBP, USD)
	assert.ErrorIs(t, err, ErrRateUnavailable)

	// a rate exists for JPY, but not on this date. No forward fill
	_, err = conv.Convert(testDay.AddDate(0, 0, 1), decimal.NewFromInt(1), JPY, USD)
	assert.ErrorIs(t, err, ErrRateUnavailable)
}

func TestNonPositiveRateRejected(t *testing.T) {
	for _, rate := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		rates := NewRateHistory()
		err := rates.SetRates(testDay, map[Code]decimal.Decimal{EUR: rate})
		assert.ErrorIs(t, err, errRateInvalid, rate.String())

		// nothing from the rejected batch may be stored
		_, err = rates.Rate(testDay, EUR)
		assert.ErrorIs(t, err, ErrRateUnavailable)
	}
}

func TestRatesOutOfOrderRejected(t *testing.T) {
	rates := NewRateHistory()
	require.NoError(t, rates.SetRates(testDay, map[Code]decimal.Decimal{JPY: decimal.NewFromInt(110)}))
	err := rates.SetRates(testDay.AddDate(0, 0, -1), map[Code]decimal.Decimal{JPY: decimal.NewFromInt(111)})
	assert.Error(t, err)
}

func TestNewConverterValidation(t *testing.T) {
	_, err := NewConverter("", NewRateHistory())
	assert.Error(t, err)
	_, err = NewConverter(USD, nil)
	assert.Error(t, err)
}
