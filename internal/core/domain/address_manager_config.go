package domain

import "fmt"

const (
	// DefaultGapLimit ...
	DefaultGapLimit = 20
	// DefaultAddressCount ...
	DefaultAddressCount = 10
)

// AddressManagerConfig holds the parameters of an address manager bound to
// one account chain.
type AddressManagerConfig struct {
	// WalletID scopes the cached addresses, see NewWalletID. It is required
	// when the repository is shared with other managers.
	WalletID     string
	AccountIndex uint32
	// IsChange selects the internal chain.
	IsChange bool
	// GapLimit is the number of consecutive unused addresses after which
	// discovery stops. It is also the size of every derived block.
	GapLimit int
	// DefaultAddressCount is the number of addresses older wallets derived
	// up front. It must not exceed GapLimit.
	DefaultAddressCount int
	// DisableCaching makes every derivation hit the crypto provider.
	DisableCaching bool
	// DerivationConcurrency bounds concurrent derivations of a block, zero
	// means unbounded.
	DerivationConcurrency int
}

// Validate returns an error wrapping ErrParamsValidation if the config is
// not usable.
func (c AddressManagerConfig) Validate() error {
	if c.GapLimit <= 0 {
		return fmt.Errorf("%w: %w: %d", ErrParamsValidation, ErrInvalidGapLimit, c.GapLimit)
	}
	if c.DefaultAddressCount > c.GapLimit {
		return fmt.Errorf(
			"%w: %w: %d > %d",
			ErrParamsValidation, ErrInvalidDefaultAddressCount,
			c.DefaultAddressCount, c.GapLimit,
		)
	}
	if c.DerivationConcurrency < 0 {
		return fmt.Errorf(
			"%w: %w: %d",
			ErrParamsValidation, ErrInvalidDerivationConcurrency, c.DerivationConcurrency,
		)
	}
	return nil
}

// Chain returns the chain flag of the config.
func (c AddressManagerConfig) Chain() uint32 {
	if c.IsChange {
		return InternalChain
	}
	return ExternalChain
}
