package mathutil

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeValue is returned when a decimal that must represent an
	// amount is below zero.
	ErrNegativeValue = errors.New("value must not be negative")
	// ErrValueOverflow is returned when a decimal does not fit an uint64.
	ErrValueOverflow = errors.New("value overflows uint64")
)

// FromUint64 returns x as a decimal.Decimal without going through int64.
func FromUint64(x uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
}

// CeilUint64 rounds d towards +inf and returns it as an uint64.
func CeilUint64(d decimal.Decimal) (uint64, error) {
	if d.IsNegative() {
		return 0, ErrNegativeValue
	}
	c := d.Ceil().BigInt()
	if !c.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrValueOverflow, c)
	}
	return c.Uint64(), nil
}
