package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/tdex-network/byron-wallet/internal/core/domain"
	"github.com/tdex-network/byron-wallet/internal/core/ports"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

// AddressGenerator derives the address at local index i of an account chain.
type AddressGenerator func(ctx context.Context, i uint32) (*domain.DerivedAddress, error)

type byronAddressGenerator struct {
	provider     ports.CryptoProvider
	packer       ports.AddressPacker
	accountIndex uint32
	chain        uint32

	lock         sync.Mutex
	hdPassphrase []byte
}

// NewByronAddressGenerator returns the generator of Byron addresses for the
// given account chain. The derivation scheme of provider decides the path
// layout, the first index in use and whether the wallet HD passphrase is
// packed into the address.
func NewByronAddressGenerator(
	provider ports.CryptoProvider, packer ports.AddressPacker,
	accountIndex uint32, isChange bool,
) (AddressGenerator, error) {
	if provider == nil {
		return nil, ErrNullCryptoProvider
	}
	if packer == nil {
		return nil, ErrNullAddressPacker
	}

	chain := domain.ExternalChain
	if isChange {
		chain = domain.InternalChain
	}
	g := &byronAddressGenerator{
		provider:     provider,
		packer:       packer,
		accountIndex: accountIndex,
		chain:        chain,
	}
	return g.generate, nil
}

func (g *byronAddressGenerator) generate(
	ctx context.Context, i uint32,
) (*domain.DerivedAddress, error) {
	scheme := g.provider.DerivationScheme()

	path, err := scheme.ToAbsoluteDerivationPath([]uint32{
		g.accountIndex, g.chain, i + scheme.StartAddressIndex(),
	})
	if err != nil {
		return nil, err
	}
	xpub, err := g.provider.DeriveXpub(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to derive xpub for %s: %w", path, err)
	}

	var hdPassphrase []byte
	if scheme.RequiresHDPassphrase() {
		if hdPassphrase, err = g.getHDPassphrase(ctx); err != nil {
			return nil, fmt.Errorf("failed to get hd passphrase: %w", err)
		}
	}

	addr, err := g.packer.PackAddress(path, xpub, hdPassphrase, scheme.Number())
	if err != nil {
		return nil, err
	}

	return &domain.DerivedAddress{
		AccountIndex: g.accountIndex,
		Chain:        g.chain,
		Index:        i,
		Path:         path,
		Address:      addr,
	}, nil
}

// getHDPassphrase fetches the passphrase from the provider the first time
// and reuses it afterwards.
func (g *byronAddressGenerator) getHDPassphrase(ctx context.Context) ([]byte, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.hdPassphrase == nil {
		hdPassphrase, err := g.provider.HDPassphrase(ctx)
		if err != nil {
			return nil, err
		}
		if len(hdPassphrase) <= 0 {
			return nil, wallet.ErrNullHDPassphrase
		}
		g.hdPassphrase = hdPassphrase
	}
	return g.hdPassphrase, nil
}
