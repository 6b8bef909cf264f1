package application

import (
	"context"
	"sync"

	"github.com/tdex-network/byron-wallet/internal/core/ports"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

type serializedCryptoProvider struct {
	lock     sync.Mutex
	provider ports.CryptoProvider
}

// NewSerializedCryptoProvider wraps provider so that at most one call to
// the underlying key material is in flight, as required by devices that
// accept a single request at a time.
func NewSerializedCryptoProvider(provider ports.CryptoProvider) ports.CryptoProvider {
	return &serializedCryptoProvider{provider: provider}
}

func (p *serializedCryptoProvider) DeriveXpub(
	ctx context.Context, path wallet.DerivationPath,
) ([]byte, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.provider.DeriveXpub(ctx, path)
}

func (p *serializedCryptoProvider) DerivationScheme() wallet.DerivationScheme {
	return p.provider.DerivationScheme()
}

func (p *serializedCryptoProvider) HDPassphrase(ctx context.Context) ([]byte, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.provider.HDPassphrase(ctx)
}
