package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/byron-wallet/internal/core/domain"
	"github.com/tdex-network/byron-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

const (
	walletID      = "wallet"
	otherWalletID = "other-wallet"
)

func newDerivedAddress(account, chain, index uint32) domain.DerivedAddress {
	return domain.DerivedAddress{
		WalletID:     walletID,
		AccountIndex: account,
		Chain:        chain,
		Index:        index,
		Path: wallet.DerivationPath{
			wallet.Hardened(44), wallet.Hardened(1815), wallet.Hardened(account), chain, index,
		},
		Address: fmt.Sprintf("addr-%d-%d-%d", account, chain, index),
	}
}

func TestAddressRepository(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewAddressRepository()

	_, err := repo.GetAddress(ctx, walletID, 0, 0, 0)
	require.ErrorIs(t, err, domain.ErrAddressNotFound)

	for _, i := range []uint32{3, 1, 2, 0} {
		require.NoError(t, repo.UpsertAddress(ctx, newDerivedAddress(0, 0, i)))
	}
	require.NoError(t, repo.UpsertAddress(ctx, newDerivedAddress(0, 1, 0)))
	require.NoError(t, repo.UpsertAddress(ctx, newDerivedAddress(1, 0, 0)))

	addr, err := repo.GetAddress(ctx, walletID, 0, 0, 2)
	require.NoError(t, err)
	require.Equal(t, newDerivedAddress(0, 0, 2), *addr)

	// Returned values are copies.
	addr.Path[4] = 99
	addr, err = repo.GetAddress(ctx, walletID, 0, 0, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(2), addr.Path[4])

	addresses, err := repo.ListAddresses(ctx, walletID, 0, 0)
	require.NoError(t, err)
	require.Len(t, addresses, 4)
	for i, addr := range addresses {
		require.Equal(t, uint32(i), addr.Index)
	}

	updated := newDerivedAddress(0, 0, 1)
	updated.Address = "updated"
	require.NoError(t, repo.UpsertAddress(ctx, updated))
	addr, err = repo.GetAddress(ctx, walletID, 0, 0, 1)
	require.NoError(t, err)
	require.Equal(t, "updated", addr.Address)

	addresses, err = repo.ListAddresses(ctx, walletID, 2, 0)
	require.NoError(t, err)
	require.Empty(t, addresses)
}

func TestAddressRepositoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewAddressRepository()

	wg := &sync.WaitGroup{}
	for i := uint32(0); i < 100; i++ {
		wg.Add(1)
		go func(i uint32) {
			defer wg.Done()
			require.NoError(t, repo.UpsertAddress(ctx, newDerivedAddress(0, 0, i)))
			_, _ = repo.ListAddresses(ctx, walletID, 0, 0)
		}(i)
	}
	wg.Wait()

	addresses, err := repo.ListAddresses(ctx, walletID, 0, 0)
	require.NoError(t, err)
	require.Len(t, addresses, 100)
}

func TestAddressRepositoryWalletIsolation(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewAddressRepository()

	for i := uint32(0); i < 3; i++ {
		require.NoError(t, repo.UpsertAddress(ctx, newDerivedAddress(0, 0, i)))
	}
	other := newDerivedAddress(0, 0, 1)
	other.WalletID = otherWalletID
	other.Address = "other-addr"
	require.NoError(t, repo.UpsertAddress(ctx, other))

	addr, err := repo.GetAddress(ctx, walletID, 0, 0, 1)
	require.NoError(t, err)
	require.Equal(t, "addr-0-0-1", addr.Address)

	addr, err = repo.GetAddress(ctx, otherWalletID, 0, 0, 1)
	require.NoError(t, err)
	require.Equal(t, "other-addr", addr.Address)

	_, err = repo.GetAddress(ctx, otherWalletID, 0, 0, 0)
	require.ErrorIs(t, err, domain.ErrAddressNotFound)

	addresses, err := repo.ListAddresses(ctx, walletID, 0, 0)
	require.NoError(t, err)
	require.Len(t, addresses, 3)

	addresses, err = repo.ListAddresses(ctx, otherWalletID, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []domain.DerivedAddress{other}, addresses)
}
