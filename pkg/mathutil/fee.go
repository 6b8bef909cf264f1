package mathutil

import (
	"github.com/shopspring/decimal"
)

// LinearFee returns ceil(a + b*size). Computations are exact, so constants
// like 43.946 never suffer binary floating point rounding.
func LinearFee(a, b decimal.Decimal, size uint64) (uint64, error) {
	total := a.Add(b.Mul(FromUint64(size)))
	return CeilUint64(total)
}
