package domain

import "context"

// AddressRepository caches derived addresses. Entries of different wallets
// never mix: every lookup is scoped to a wallet id.
type AddressRepository interface {
	// GetAddress returns ErrAddressNotFound for addresses not derived yet.
	GetAddress(
		ctx context.Context, walletID string, accountIndex, chain, index uint32,
	) (*DerivedAddress, error)
	// UpsertAddress adds the address or replaces the one with same key.
	UpsertAddress(ctx context.Context, addr DerivedAddress) error
	// ListAddresses returns the addresses of an account chain sorted by
	// index.
	ListAddresses(
		ctx context.Context, walletID string, accountIndex, chain uint32,
	) ([]DerivedAddress, error)
}
