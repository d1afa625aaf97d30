package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceChangeType(t *testing.T) {
	got, err := ParsePriceChangeType("percentage")
	require.NoError(t, err)
	assert.Equal(t, PriceChangePercentage, got)

	got, err = ParsePriceChangeType("fixed")
	require.NoError(t, err)
	assert.Equal(t, PriceChangeFixed, got)

	_, err = ParsePriceChangeType("Percentage")
	assert.Error(t, err)
	_, err = ParsePriceChangeType("")
	assert.Error(t, err)
}

func TestPriceChangeApply(t *testing.T) {
	tests := []struct {
		name   string
		change PriceChange
		price  string
		want   string
	}{
		{"ten percent up", PriceChange{PriceChangePercentage, decimal.NewFromInt(10)}, "15.99", "17.59"},
		{"twenty percent down", PriceChange{PriceChangePercentage, decimal.NewFromInt(-20)}, "10.00", "8.00"},
		{"zero percent", PriceChange{PriceChangePercentage, decimal.Zero}, "9.99", "9.99"},
		{"fixed", PriceChange{PriceChangeFixed, decimal.RequireFromString("12.5")}, "15.99", "12.50"},
		{"fixed rounds to cents", PriceChange{PriceChangeFixed, decimal.RequireFromString("3.14159")}, "1.00", "3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.change.Validate())
			got := tt.change.Apply(decimal.RequireFromString(tt.price))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestPriceChangeValidate(t *testing.T) {
	assert.Error(t, PriceChange{PriceChangePercentage, decimal.NewFromInt(-100)}.Validate())
	assert.Error(t, PriceChange{PriceChangePercentage, decimal.NewFromInt(-150)}.Validate())
	assert.NoError(t, PriceChange{PriceChangePercentage, decimal.RequireFromString("-99.9")}.Validate())
	assert.Error(t, PriceChange{PriceChangeFixed, decimal.RequireFromString("-0.01")}.Validate())
	assert.NoError(t, PriceChange{PriceChangeFixed, decimal.Zero}.Validate())
	assert.NoError(t, PriceChange{PriceChangeFixed, MaxAmount}.Validate())
	assert.Error(t, PriceChange{PriceChangeFixed, MaxAmount.Add(decimal.RequireFromString("0.01"))}.Validate())
	assert.Error(t, PriceChange{PriceChangeType("bogus"), decimal.NewFromInt(1)}.Validate())
}
