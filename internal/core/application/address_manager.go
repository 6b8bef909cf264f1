package application

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/byron-wallet/internal/core/domain"
	"github.com/tdex-network/byron-wallet/internal/core/ports"
	"github.com/tdex-network/byron-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
	"golang.org/x/sync/errgroup"
)

const maxDiscoveryPrealloc = 1024

// NewAddressManagerOpts is the struct given to NewAddressManager.
type NewAddressManagerOpts struct {
	Config           domain.AddressManagerConfig
	AddressGenerator AddressGenerator
	UsageOracle      ports.UsageOracle
	// Repository defaults to an in-memory one, bound to the lifetime of the
	// manager. A given one requires Config.WalletID to be set.
	Repository domain.AddressRepository
}

func (o NewAddressManagerOpts) validate() error {
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.AddressGenerator == nil {
		return ErrNullAddressGenerator
	}
	if o.UsageOracle == nil {
		return ErrNullUsageOracle
	}
	if o.Repository != nil && len(o.Config.WalletID) <= 0 {
		return fmt.Errorf("%w: %w", domain.ErrParamsValidation, domain.ErrNullWalletID)
	}
	return nil
}

// AddressManager discovers the addresses of an account chain with the gap
// limit protocol: blocks of GapLimit addresses are derived one after the
// other until one of them has no on-chain history.
type AddressManager struct {
	cfg     domain.AddressManagerConfig
	addrGen AddressGenerator
	oracle  ports.UsageOracle
	repo    domain.AddressRepository
}

// NewAddressManager validates the given config before anything is derived.
func NewAddressManager(opts NewAddressManagerOpts) (*AddressManager, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	repo := opts.Repository
	if repo == nil {
		repo = inmemory.NewAddressRepository()
	}

	return &AddressManager{
		cfg:     opts.Config,
		addrGen: opts.AddressGenerator,
		oracle:  opts.UsageOracle,
		repo:    repo,
	}, nil
}

// DeriveAddress returns the address at local index i, from cache unless
// caching is disabled. Freshly derived addresses are always cached.
func (m *AddressManager) DeriveAddress(ctx context.Context, i uint32) (string, error) {
	if !m.cfg.DisableCaching {
		addr, err := m.repo.GetAddress(
			ctx, m.cfg.WalletID, m.cfg.AccountIndex, m.cfg.Chain(), i,
		)
		if err == nil {
			return addr.Address, nil
		}
		if !errors.Is(err, domain.ErrAddressNotFound) {
			return "", err
		}
	}

	addr, err := m.addrGen(ctx, i)
	if err != nil {
		return "", err
	}
	addr.WalletID = m.cfg.WalletID
	if err := m.repo.UpsertAddress(ctx, *addr); err != nil {
		return "", err
	}
	return addr.Address, nil
}

// DeriveAddressBlock derives the addresses in [begin, end) concurrently and
// returns them in index order. It fails if any derivation fails.
func (m *AddressManager) DeriveAddressBlock(
	ctx context.Context, begin, end uint32,
) ([]string, error) {
	if end < begin {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrInvalidBlockRange, begin, end)
	}

	addresses := make([]string, end-begin)

	eg, ctx := errgroup.WithContext(ctx)
	if m.cfg.DerivationConcurrency > 0 {
		eg.SetLimit(m.cfg.DerivationConcurrency)
	}
	for i := begin; i < end; i++ {
		i := i
		eg.Go(func() error {
			addr, err := m.DeriveAddress(ctx, i)
			if err != nil {
				return err
			}
			addresses[i-begin] = addr
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return addresses, nil
}

// DiscoverAddresses returns every address of the account chain up to, and
// excluding, the first block with no used address. A fresh account yields
// its first block. Blocks are strictly processed one at a time.
// Discovery fails with ErrAddressIndexOverflow rather than deriving a block
// that reaches the hardened index range.
func (m *AddressManager) DiscoverAddresses(ctx context.Context) ([]string, error) {
	gapLimit := uint64(m.cfg.GapLimit)
	addresses := make([]string, 0, min(gapLimit, maxDiscoveryPrealloc))

	for from := uint64(0); ; from += gapLimit {
		to := from + gapLimit
		if to > uint64(wallet.HardenedKeyStart) {
			return nil, fmt.Errorf(
				"%w: block [%d, %d)", ErrAddressIndexOverflow, from, to,
			)
		}

		block, err := m.DeriveAddressBlock(ctx, uint32(from), uint32(to))
		if err != nil {
			return nil, err
		}

		isUsed, err := m.oracle.IsAnyAddressUsed(ctx, block)
		if err != nil {
			return nil, fmt.Errorf("failed to check address usage: %w", err)
		}

		log.WithFields(log.Fields{
			"account": m.cfg.AccountIndex,
			"chain":   m.cfg.Chain(),
			"from":    from,
			"used":    isUsed,
		}).Debug("address block checked")

		if !isUsed {
			if len(addresses) <= 0 {
				addresses = append(addresses, block...)
			}
			return addresses, nil
		}
		addresses = append(addresses, block...)
	}
}

// DiscoverAddressesWithMeta is like DiscoverAddresses, but also returns the
// path of every address and whether it is used.
func (m *AddressManager) DiscoverAddressesWithMeta(
	ctx context.Context,
) ([]domain.AddressInfo, error) {
	addresses, err := m.DiscoverAddresses(ctx)
	if err != nil {
		return nil, err
	}
	used, err := m.oracle.FilterUsedAddresses(ctx, addresses)
	if err != nil {
		return nil, fmt.Errorf("failed to filter used addresses: %w", err)
	}
	paths, err := m.AddressToPathMapping(ctx)
	if err != nil {
		return nil, err
	}

	info := make([]domain.AddressInfo, 0, len(addresses))
	for _, addr := range addresses {
		info = append(info, domain.AddressInfo{
			Address:        addr,
			DerivationPath: paths[addr].String(),
			IsUsed:         used.Has(addr),
		})
	}
	return info, nil
}

// AddressToPathMapping returns the absolute path of every address derived so
// far for the account chain.
func (m *AddressManager) AddressToPathMapping(
	ctx context.Context,
) (map[string]wallet.DerivationPath, error) {
	addresses, err := m.repo.ListAddresses(
		ctx, m.cfg.WalletID, m.cfg.AccountIndex, m.cfg.Chain(),
	)
	if err != nil {
		return nil, err
	}

	mapping := make(map[string]wallet.DerivationPath, len(addresses))
	for _, addr := range addresses {
		mapping[addr.Address] = addr.Path.Clone()
	}
	return mapping, nil
}
