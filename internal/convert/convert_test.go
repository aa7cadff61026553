package convert

import (
	"strings"
	"testing"

	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTokenUnits(t *testing.T) {
	tests := []struct {
		name      string
		fiat      string
		unitPrice string
		decimals  int32
		want      string
	}{
		{
			name:      "exact division at 18 decimals",
			fiat:      "1000",
			unitPrice: "50",
			decimals:  18,
			want:      "20000000000000000000",
		},
		{
			name:      "truncates fractional dust",
			fiat:      "1",
			unitPrice: "3",
			decimals:  18,
			want:      "333333333333333333",
		},
		{
			name:      "fractional price",
			fiat:      "10",
			unitPrice: "0.5",
			decimals:  6,
			want:      "20000000",
		},
		{
			name:      "zero fiat",
			fiat:      "0",
			unitPrice: "12.34",
			decimals:  18,
			want:      "0",
		},
		{
			name:      "large payout keeps every digit",
			fiat:      "123456789.99",
			unitPrice: "7",
			decimals:  18,
			want:      "17636684284285714285714285",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToTokenUnits(
				decimal.RequireFromString(tt.fiat),
				decimal.RequireFromString(tt.unitPrice),
				tt.decimals,
			)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToTokenUnitsNeverExponential(t *testing.T) {
	got, err := ToTokenUnits(decimal.RequireFromString("5000000"), decimal.RequireFromString("2"), 18)
	require.NoError(t, err)
	assert.False(t, strings.ContainsAny(got, "eE."), "want plain digits, got %s", got)
	assert.Equal(t, "2500000000000000000000000", got)
}

func TestToTokenUnitsRejectsBadInputs(t *testing.T) {
	_, err := ToTokenUnits(decimal.NewFromInt(10), decimal.Zero, 18)
	assert.ErrorIs(t, err, errno.ErrInvalidPrice)

	_, err = ToTokenUnits(decimal.NewFromInt(10), decimal.NewFromInt(-1), 18)
	assert.ErrorIs(t, err, errno.ErrInvalidPrice)

	_, err = ToTokenUnits(decimal.NewFromInt(-10), decimal.NewFromInt(50), 18)
	assert.ErrorIs(t, err, errno.ErrEncoding)
}
