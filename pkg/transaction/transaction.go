package transaction

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/tdex-network/byron-wallet/pkg/cborutil"
)

// UnsignedTransaction is immutable once built. Its id is the hash of its
// canonical encoding and never depends on witnesses.
type UnsignedTransaction struct {
	inputs     []TxInput
	outputs    []TxOutput
	attributes Attributes
	hasher     Hasher
}

// NewUnsignedTransactionOpts is the struct given to NewUnsignedTransaction
type NewUnsignedTransactionOpts struct {
	Inputs     []TxInput
	Outputs    []TxOutput
	Attributes Attributes
	// Hasher defaults to DefaultHasher.
	Hasher Hasher
}

func (o NewUnsignedTransactionOpts) validate() error {
	if len(o.Inputs) <= 0 {
		return ErrEmptyInputs
	}
	if len(o.Outputs) <= 0 {
		return ErrEmptyOutputs
	}
	for i, in := range o.Inputs {
		if err := in.validate(); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}
	for i, out := range o.Outputs {
		if err := out.validate(); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}
	return o.Attributes.validate()
}

// NewUnsignedTransaction validates and copies the given inputs, outputs and
// attributes into a new transaction.
func NewUnsignedTransaction(opts NewUnsignedTransactionOpts) (*UnsignedTransaction, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	hasher := opts.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &UnsignedTransaction{
		inputs:     append([]TxInput{}, opts.Inputs...),
		outputs:    append([]TxOutput{}, opts.Outputs...),
		attributes: opts.Attributes.clone(),
		hasher:     hasher,
	}, nil
}

func (tx *UnsignedTransaction) Inputs() []TxInput {
	return append([]TxInput{}, tx.inputs...)
}

func (tx *UnsignedTransaction) Outputs() []TxOutput {
	return append([]TxOutput{}, tx.outputs...)
}

func (tx *UnsignedTransaction) Attributes() Attributes {
	return tx.attributes.clone()
}

// MarshalCBOR encodes the transaction as the 3-tuple
// [indef(inputs), indef(outputs), attributes].
func (tx *UnsignedTransaction) MarshalCBOR() ([]byte, error) {
	ins := make(cborutil.IndefiniteArray, 0, len(tx.inputs))
	for _, in := range tx.inputs {
		ins = append(ins, in)
	}
	outs := make(cborutil.IndefiniteArray, 0, len(tx.outputs))
	for _, out := range tx.outputs {
		outs = append(outs, out)
	}
	return cborutil.Marshal([]interface{}{ins, outs, tx.attributes})
}

// Serialize returns the canonical encoding of the transaction.
func (tx *UnsignedTransaction) Serialize() ([]byte, error) {
	return tx.MarshalCBOR()
}

// IDBytes returns the raw 32 byte transaction id.
func (tx *UnsignedTransaction) IDBytes() ([]byte, error) {
	buf, err := tx.Serialize()
	if err != nil {
		return nil, err
	}
	return tx.hasher.Hash(buf), nil
}

// ID returns the transaction id in hex format.
func (tx *UnsignedTransaction) ID() (string, error) {
	id, err := tx.IDBytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(id), nil
}

// SignedTransaction wraps an UnsignedTransaction with the witnesses that
// authorize its inputs.
type SignedTransaction struct {
	transaction *UnsignedTransaction
	witnesses   []TxWitness
}

// NewSignedTransaction attaches witnesses to tx in the given order.
func NewSignedTransaction(
	tx *UnsignedTransaction, witnesses []TxWitness,
) (*SignedTransaction, error) {
	if tx == nil {
		return nil, ErrNullTransaction
	}
	for i, w := range witnesses {
		if err := w.validate(); err != nil {
			return nil, fmt.Errorf("witness %d: %w", i, err)
		}
	}
	return &SignedTransaction{
		transaction: tx,
		witnesses:   append([]TxWitness{}, witnesses...),
	}, nil
}

func (tx *SignedTransaction) Transaction() *UnsignedTransaction {
	return tx.transaction
}

func (tx *SignedTransaction) Witnesses() []TxWitness {
	return append([]TxWitness{}, tx.witnesses...)
}

// ID is the id of the wrapped transaction.
func (tx *SignedTransaction) ID() (string, error) {
	return tx.transaction.ID()
}

// IDBytes is the raw id of the wrapped transaction.
func (tx *SignedTransaction) IDBytes() ([]byte, error) {
	return tx.transaction.IDBytes()
}

// MarshalCBOR encodes the transaction as [tx, [witnesses]], witnesses as a
// definite-length array in insertion order.
func (tx *SignedTransaction) MarshalCBOR() ([]byte, error) {
	witnesses := make([]interface{}, 0, len(tx.witnesses))
	for _, w := range tx.witnesses {
		witnesses = append(witnesses, w)
	}
	return cborutil.Marshal([]interface{}{tx.transaction, witnesses})
}

// Serialize returns the canonical encoding, ready for broadcast.
func (tx *SignedTransaction) Serialize() ([]byte, error) {
	return tx.MarshalCBOR()
}

// SerializeHex returns the canonical encoding in hex format.
func (tx *SignedTransaction) SerializeHex() (string, error) {
	buf, err := tx.Serialize()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// DecodeUnsignedTransaction parses the canonical encoding of an unsigned
// transaction.
func DecodeUnsignedTransaction(buf []byte) (*UnsignedTransaction, error) {
	tx, err := decodeUnsignedTransaction(buf)
	if err != nil {
		return nil, err
	}
	if err := checkCanonical(buf, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// DecodeSignedTransaction parses the canonical encoding of a signed
// transaction.
func DecodeSignedTransaction(buf []byte) (*SignedTransaction, error) {
	var parts []cbor.RawMessage
	if err := cborutil.Unmarshal(buf, &parts); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTransaction, err)
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf(
			"%w: expected 2 items, got %d", ErrMalformedTransaction, len(parts),
		)
	}

	unsignedTx, err := decodeUnsignedTransaction(parts[0])
	if err != nil {
		return nil, err
	}

	var rawWitnesses []cbor.RawMessage
	if err := cborutil.Unmarshal(parts[1], &rawWitnesses); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTransaction, err)
	}
	witnesses := make([]TxWitness, 0, len(rawWitnesses))
	for i, raw := range rawWitnesses {
		w, err := decodeTxWitness(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: witness %d: %s", ErrMalformedTransaction, i, err)
		}
		witnesses = append(witnesses, w)
	}

	tx, err := NewSignedTransaction(unsignedTx, witnesses)
	if err != nil {
		return nil, err
	}
	if err := checkCanonical(buf, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// DecodeSignedTransactionHex is DecodeSignedTransaction for hex input.
func DecodeSignedTransactionHex(str string) (*SignedTransaction, error) {
	buf, err := hex.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTransaction, err)
	}
	return DecodeSignedTransaction(buf)
}

func decodeUnsignedTransaction(buf []byte) (*UnsignedTransaction, error) {
	var parts []cbor.RawMessage
	if err := cborutil.Unmarshal(buf, &parts); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTransaction, err)
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf(
			"%w: expected 3 items, got %d", ErrMalformedTransaction, len(parts),
		)
	}

	rawIns, err := cborutil.SplitIndefiniteArray(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: inputs: %s", ErrMalformedTransaction, err)
	}
	ins := make([]TxInput, 0, len(rawIns))
	for i, raw := range rawIns {
		in, err := decodeTxInput(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %s", ErrMalformedTransaction, i, err)
		}
		ins = append(ins, in)
	}

	rawOuts, err := cborutil.SplitIndefiniteArray(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: outputs: %s", ErrMalformedTransaction, err)
	}
	outs := make([]TxOutput, 0, len(rawOuts))
	for i, raw := range rawOuts {
		out, err := decodeTxOutput(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: output %d: %s", ErrMalformedTransaction, i, err)
		}
		outs = append(outs, out)
	}

	var attrs Attributes
	if err := cborutil.Unmarshal(parts[2], &attrs); err != nil {
		return nil, fmt.Errorf("%w: attributes: %s", ErrMalformedTransaction, err)
	}

	return NewUnsignedTransaction(NewUnsignedTransactionOpts{
		Inputs:     ins,
		Outputs:    outs,
		Attributes: attrs,
	})
}

// Serializer is implemented by both signed and unsigned transactions.
type Serializer interface {
	Serialize() ([]byte, error)
}

func checkCanonical(buf []byte, tx Serializer) error {
	reencoded, err := tx.Serialize()
	if err != nil {
		return err
	}
	if !bytes.Equal(reencoded, buf) {
		return ErrNonCanonicalEncoding
	}
	return nil
}
