package wallet

import (
	"errors"
)

var (
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New("derivation path is malformed")
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrInvalidRelativePath ...
	ErrInvalidRelativePath = errors.New(
		"relative path must be in the form [account, chain, index]",
	)
	// ErrInvalidChain ...
	ErrInvalidChain = errors.New("chain must be 0 (external) or 1 (internal)")
	// ErrUnknownDerivationScheme ...
	ErrUnknownDerivationScheme = errors.New("unknown derivation scheme")

	// ErrInvalidExtendedPublicKey ...
	ErrInvalidExtendedPublicKey = errors.New(
		"extended public key must be a 64 byte array",
	)
	// ErrNullHDPassphrase ...
	ErrNullHDPassphrase = errors.New(
		"hd passphrase is required by the derivation scheme",
	)
	// ErrInvalidHDPassphrase ...
	ErrInvalidHDPassphrase = errors.New("hd passphrase must be a 32 byte array")
	// ErrMissingPathPayload ...
	ErrMissingPathPayload = errors.New("address does not carry a derivation path")
	// ErrInvalidPathPayload ...
	ErrInvalidPathPayload = errors.New("derivation path payload cannot be decrypted")

	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not a valid byron address")
	// ErrInvalidAddressChecksum ...
	ErrInvalidAddressChecksum = errors.New("address checksum mismatch")
)
