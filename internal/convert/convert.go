// Package convert turns fiat amounts into integer token units.
package convert

import (
	"github.com/Rezan-vm/tornado-cash-salary-proposals/pkg/errno"

	"github.com/shopspring/decimal"
)

// ToTokenUnits computes fiat / unitPrice scaled to the token's smallest unit
// and renders it as a plain digit string, never in exponential notation,
// since the calldata encoding needs the exact digit sequence.
//
// The arithmetic is arbitrary-precision decimal throughout; the quotient is
// carried to decimal.DivisionPrecision fractional digits and then floored, so
// fractional token dust is truncated rather than rounded up. This replaces
// the float64 division an earlier version of this pipeline used, which could
// misstate the low-order digits of large payouts at the 10^18 scale.
func ToTokenUnits(fiat, unitPrice decimal.Decimal, decimals int32) (string, error) {
	if unitPrice.Sign() <= 0 {
		return "", errno.ErrInvalidPrice.WithDetail("got %s", unitPrice)
	}
	if fiat.Sign() < 0 {
		return "", errno.ErrEncoding.WithDetail("negative fiat amount %s", fiat)
	}

	units := fiat.Shift(decimals).Div(unitPrice).Floor()
	return units.String(), nil
}
