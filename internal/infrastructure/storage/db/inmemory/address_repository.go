package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/byron-wallet/internal/core/domain"
)

// AddressRepositoryImpl keeps derived addresses in memory.
type AddressRepositoryImpl struct {
	locker    sync.RWMutex
	addresses map[string]domain.DerivedAddress
}

// NewAddressRepository returns a new empty AddressRepositoryImpl.
func NewAddressRepository() *AddressRepositoryImpl {
	return &AddressRepositoryImpl{
		addresses: make(map[string]domain.DerivedAddress),
	}
}

func (r *AddressRepositoryImpl) GetAddress(
	_ context.Context, walletID string, accountIndex, chain, index uint32,
) (*domain.DerivedAddress, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	addr, ok := r.addresses[domain.AddressKey(walletID, accountIndex, chain, index)]
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	addr.Path = addr.Path.Clone()
	return &addr, nil
}

func (r *AddressRepositoryImpl) UpsertAddress(
	_ context.Context, addr domain.DerivedAddress,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	addr.Path = addr.Path.Clone()
	r.addresses[addr.Key()] = addr
	return nil
}

func (r *AddressRepositoryImpl) ListAddresses(
	_ context.Context, walletID string, accountIndex, chain uint32,
) ([]domain.DerivedAddress, error) {
	r.locker.RLock()
	defer r.locker.RUnlock()

	addresses := make([]domain.DerivedAddress, 0)
	for _, addr := range r.addresses {
		if addr.WalletID == walletID &&
			addr.AccountIndex == accountIndex && addr.Chain == chain {
			addr.Path = addr.Path.Clone()
			addresses = append(addresses, addr)
		}
	}
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i].Index < addresses[j].Index
	})
	return addresses, nil
}
