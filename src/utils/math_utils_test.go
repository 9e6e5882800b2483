package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"100.50", 100.5},
		{"1,234.56", 1234.56},
		{"12,345,678.90", 12345678.9},
		{" 42.00 ", 42},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "12.3.4"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCommissionRatePercent(t *testing.T) {
	assert.Equal(t, 10, CommissionRatePercent(10, 100))
	assert.Equal(t, 11, CommissionRatePercent(10.5, 100))
	assert.Equal(t, 29, CommissionRatePercent(29, 100))
	assert.Equal(t, 0, CommissionRatePercent(0, 100))
}

func TestCommissionRatePercentZeroSale(t *testing.T) {
	// A zero sale amount must never divide; the rate is defined as 0.
	assert.Equal(t, 0, CommissionRatePercent(5, 0))
	assert.Equal(t, 0, CommissionRatePercent(0, 0))
}

func TestCommissionRatePercentCanExceedHundred(t *testing.T) {
	// Rates above 100% are mathematically possible and must pass through.
	assert.Equal(t, 150, CommissionRatePercent(15, 10))
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 0.11, RoundFloat(0.105, 2))
	assert.Equal(t, 0.1, RoundFloat(0.1049, 2))
	assert.Equal(t, 3.0, RoundFloat(2.999, 0))
}
