package application

import "errors"

var (
	// ErrNullCryptoProvider ...
	ErrNullCryptoProvider = errors.New("crypto provider must not be null")
	// ErrNullAddressPacker ...
	ErrNullAddressPacker = errors.New("address packer must not be null")
	// ErrNullUsageOracle ...
	ErrNullUsageOracle = errors.New("usage oracle must not be null")
	// ErrNullAddressGenerator ...
	ErrNullAddressGenerator = errors.New("address generator must not be null")
	// ErrNullWitnessSigner ...
	ErrNullWitnessSigner = errors.New("witness signer must not be null")
	// ErrNullTxBroadcaster ...
	ErrNullTxBroadcaster = errors.New("tx broadcaster must not be null")
	// ErrInvalidBlockRange ...
	ErrInvalidBlockRange = errors.New("block end index must not be lower than begin index")
	// ErrAddressIndexOverflow is returned when discovery would derive local
	// indexes outside of the soft derivation range.
	ErrAddressIndexOverflow = errors.New("address index overflows soft derivation range")
	// ErrInvalidInputPathsLength ...
	ErrInvalidInputPathsLength = errors.New(
		"length of tx inputs and derivation paths must match",
	)
	// ErrInvalidWitness is returned when a signer produces a witness that does
	// not verify against the transaction.
	ErrInvalidWitness = errors.New("signer returned an invalid witness")
	// ErrUnknownDBType ...
	ErrUnknownDBType = errors.New("unknown db type")
)
