/*
Package coin provides checked arithmetic of amounts and conversion between
their integer and human readable representation.

All amounts are non negative integers of the smallest unit of a currency.
A currency declares how many decimal places a whole unit has, so that
"1.5" of a currency with 2 decimals is stored as 150.
*/
package coin

import (
	"math/big"

	"github.com/iov-one/treasury/errors"
	"github.com/shopspring/decimal"
)

// MaxDecimals is the greatest number of decimal places a currency can use.
// With 9 decimals an amount holds more than 18 billion whole units.
const MaxDecimals = 9

// Add returns the sum of two amounts or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

// ParseAmount converts a human readable amount, for example "12.5", into the
// number of the smallest units of a currency with given decimal places.
// Negative values, values more precise than the currency allows and values
// that do not fit into uint64 are rejected.
func ParseAmount(s string, decimals uint8) (uint64, error) {
	if decimals > MaxDecimals {
		return 0, errors.Wrapf(errors.ErrInput, "too many decimals: %d", decimals)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrAmount, "cannot parse %q", s)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(errors.ErrAmount, "negative amount %q", s)
	}
	units := d.Shift(int32(decimals))
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(errors.ErrAmount, "%q has more than %d decimal places", s, decimals)
	}
	if units.GreaterThan(maxAmount) {
		return 0, errors.Wrapf(errors.ErrOverflow, "%q", s)
	}
	return units.BigInt().Uint64(), nil
}

// FormatAmount returns the human readable representation of an amount of
// the smallest units. Trailing zeros of the fraction are dropped.
func FormatAmount(v uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -int32(decimals)).String()
}

var maxAmount = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)), 0)
