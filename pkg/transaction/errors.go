package transaction

import "errors"

var (
	// ErrEmptyInputs ...
	ErrEmptyInputs = errors.New("input list must not be empty")
	// ErrEmptyOutputs ...
	ErrEmptyOutputs = errors.New("output list must not be empty")
	// ErrInvalidInputTxID ...
	ErrInvalidInputTxID = errors.New("input txid must be a 32 byte array in hex format")
	// ErrInvalidOutputAddress ...
	ErrInvalidOutputAddress = errors.New("output address must be a base58 encoded cbor item")
	// ErrInvalidWitnessPublicKey ...
	ErrInvalidWitnessPublicKey = errors.New("witness public key must be a 64 byte array in hex format")
	// ErrInvalidWitnessSignature ...
	ErrInvalidWitnessSignature = errors.New("witness signature must be a 64 byte array in hex format")
	// ErrDuplicatedAttributeKey ...
	ErrDuplicatedAttributeKey = errors.New("attribute keys must be unique")
	// ErrNullTransaction ...
	ErrNullTransaction = errors.New("transaction must not be null")
	// ErrMalformedTransaction is returned when decoding bytes that do not
	// follow the transaction layout.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrNonCanonicalEncoding is returned when decoded bytes do not match
	// the canonical re-encoding of the decoded value.
	ErrNonCanonicalEncoding = errors.New("transaction is not canonically encoded")
	// ErrInvalidFeeCoefficient ...
	ErrInvalidFeeCoefficient = errors.New("fee coefficient must be greater than zero")
	// ErrInvalidFeeConstant ...
	ErrInvalidFeeConstant = errors.New("fee constant must not be negative")
)
