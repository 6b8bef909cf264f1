package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/tdex-network/byron-wallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

// AddressRepositoryImpl stores derived addresses in a badger db.
type AddressRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAddressRepository opens (or creates if not exists) the badger store in
// dbDir. An empty dbDir opens an in-memory store.
func NewAddressRepository(
	dbDir string, logger badger.Logger,
) (*AddressRepositoryImpl, error) {
	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, err
	}
	return &AddressRepositoryImpl{store}, nil
}

func (r *AddressRepositoryImpl) GetAddress(
	_ context.Context, walletID string, accountIndex, chain, index uint32,
) (*domain.DerivedAddress, error) {
	var addr domain.DerivedAddress
	if err := r.store.Get(
		domain.AddressKey(walletID, accountIndex, chain, index), &addr,
	); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, err
	}
	return &addr, nil
}

func (r *AddressRepositoryImpl) UpsertAddress(
	_ context.Context, addr domain.DerivedAddress,
) error {
	return r.store.Upsert(addr.Key(), addr)
}

func (r *AddressRepositoryImpl) ListAddresses(
	_ context.Context, walletID string, accountIndex, chain uint32,
) ([]domain.DerivedAddress, error) {
	addresses := make([]domain.DerivedAddress, 0)
	query := badgerhold.Where("WalletID").Eq(walletID).
		And("AccountIndex").Eq(accountIndex).
		And("Chain").Eq(chain).
		SortBy("Index")
	if err := r.store.Find(&addresses, query); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Close closes the underlying db.
func (r *AddressRepositoryImpl) Close() {
	r.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	var opts badger.Options
	if len(dbDir) <= 0 {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dbDir)
		opts.Compression = options.ZSTD
	}
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
