package transaction

import (
	"github.com/shopspring/decimal"
	"github.com/tdex-network/byron-wallet/pkg/mathutil"
)

// FeeEstimator computes ceil(a + b*size) over the encoded size of a
// transaction. a and b are network parameters.
type FeeEstimator struct {
	constant    decimal.Decimal
	coefficient decimal.Decimal
}

// NewFeeEstimator returns an estimator for the linear fee a + b*size. b must
// be strictly positive so that longer transactions always pay more.
func NewFeeEstimator(a, b decimal.Decimal) (*FeeEstimator, error) {
	if a.IsNegative() {
		return nil, ErrInvalidFeeConstant
	}
	if !b.IsPositive() {
		return nil, ErrInvalidFeeCoefficient
	}
	return &FeeEstimator{a, b}, nil
}

// Fee returns the fee for the fully encoded tx, signed or unsigned.
func (f *FeeEstimator) Fee(tx Serializer) (uint64, error) {
	buf, err := tx.Serialize()
	if err != nil {
		return 0, err
	}
	return f.FeeForSize(uint64(len(buf)))
}

// FeeForSize returns the fee for an encoded size in bytes.
func (f *FeeEstimator) FeeForSize(size uint64) (uint64, error) {
	return mathutil.LinearFee(f.constant, f.coefficient, size)
}

// EstimateFee returns the fee tx will pay once signed, assuming one witness
// per input. Placeholder witnesses have the same encoded size as real ones.
func (f *FeeEstimator) EstimateFee(tx *UnsignedTransaction) (uint64, error) {
	if tx == nil {
		return 0, ErrNullTransaction
	}
	witnesses := make([]TxWitness, 0, len(tx.inputs))
	for range tx.inputs {
		witnesses = append(witnesses, placeholderWitness)
	}
	signedTx, err := NewSignedTransaction(tx, witnesses)
	if err != nil {
		return 0, err
	}
	return f.Fee(signedTx)
}

var placeholderWitness = NewTxWitness(make([]byte, 64), make([]byte, 64))
