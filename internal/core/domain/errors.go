package domain

import "errors"

var (
	// ErrParamsValidation is wrapped by every configuration error of the
	// address manager.
	ErrParamsValidation = errors.New("params validation error")
	// ErrInvalidGapLimit ...
	ErrInvalidGapLimit = errors.New("gap limit must be a positive number")
	// ErrInvalidDefaultAddressCount is returned when the default address
	// count exceeds the gap limit: addresses derived by older wallets would
	// not be rediscovered.
	ErrInvalidDefaultAddressCount = errors.New(
		"default address count must not exceed the gap limit",
	)
	// ErrInvalidDerivationConcurrency ...
	ErrInvalidDerivationConcurrency = errors.New(
		"derivation concurrency must not be negative",
	)
	// ErrNullWalletID is returned when an address manager shares a
	// repository without identifying its wallet.
	ErrNullWalletID = errors.New("wallet id must not be null")

	// ErrAddressNotFound is returned by repositories for addresses never
	// derived before.
	ErrAddressNotFound = errors.New("address not found")
)
