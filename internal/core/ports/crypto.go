package ports

import (
	"context"

	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

// CryptoProvider gives access to the key material of a wallet, whether kept
// in memory or on a hardware device.
type CryptoProvider interface {
	// DeriveXpub returns the 64 byte extended public key at path.
	DeriveXpub(ctx context.Context, path wallet.DerivationPath) ([]byte, error)
	DerivationScheme() wallet.DerivationScheme
	// HDPassphrase is required only by schemes that encrypt paths into
	// addresses.
	HDPassphrase(ctx context.Context) ([]byte, error)
}

// AddressPacker encodes an extended public key into an address string.
type AddressPacker interface {
	PackAddress(
		path wallet.DerivationPath, xpub, hdPassphrase []byte, schemeNumber int,
	) (string, error)
}

// WitnessSigner signs messages with the key at a derivation path.
type WitnessSigner interface {
	// Sign returns the extended public key of path and the signature of
	// message.
	Sign(
		ctx context.Context, path wallet.DerivationPath, message []byte,
	) (xpub, signature []byte, err error)
}
