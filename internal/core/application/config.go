package application

import (
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/byron-wallet/internal/core/domain"
	"github.com/tdex-network/byron-wallet/internal/core/ports"
	dbbadger "github.com/tdex-network/byron-wallet/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/byron-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/byron-wallet/pkg/explorer"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

const (
	DBInMemory = "inmemory"
	DBBadger   = "badger"
)

var (
	SupportedDBType = map[string]struct{}{
		DBInMemory: {},
		DBBadger:   {},
	}
)

// Config wires the application services together. Services and the address
// repository are built lazily and shared.
type Config struct {
	DBType string
	// DBConfig is the datadir of the badger db.
	DBConfig interface{}

	ProtocolMagic  uint32
	FeeConstant    decimal.Decimal
	FeeCoefficient decimal.Decimal

	CryptoProvider ports.CryptoProvider
	// SerializeProvider wraps CryptoProvider for single-access devices.
	SerializeProvider bool
	// AddressPacker defaults to the Byron packer for ProtocolMagic.
	AddressPacker ports.AddressPacker
	Explorer      explorer.Service
	Signer        ports.WitnessSigner

	repo      domain.AddressRepository
	closeRepo func()
	txSvc     TransactionService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return ErrUnknownDBType
	}
	if _, err := c.addressRepository(); err != nil {
		return err
	}
	if _, err := c.transactionService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) AddressRepository() domain.AddressRepository {
	repo, _ := c.addressRepository()
	return repo
}

func (c *Config) TransactionService() TransactionService {
	svc, _ := c.transactionService()
	return svc
}

// AddressManager returns a new manager for the account chain described by
// cfg, backed by the shared address repository.
func (c *Config) AddressManager(cfg domain.AddressManagerConfig) (*AddressManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c.CryptoProvider == nil {
		return nil, ErrNullCryptoProvider
	}
	if c.Explorer == nil {
		return nil, ErrNullUsageOracle
	}
	repo, err := c.addressRepository()
	if err != nil {
		return nil, err
	}

	provider := c.CryptoProvider
	if c.SerializeProvider {
		provider = NewSerializedCryptoProvider(provider)
	}
	packer := c.AddressPacker
	if packer == nil {
		packer = wallet.NewAddressPacker(c.ProtocolMagic)
	}

	addrGen, err := NewByronAddressGenerator(
		provider, packer, cfg.AccountIndex, cfg.IsChange,
	)
	if err != nil {
		return nil, err
	}
	return NewAddressManager(NewAddressManagerOpts{
		Config:           cfg,
		AddressGenerator: addrGen,
		UsageOracle:      c.Explorer,
		Repository:       repo,
	})
}

// Close releases the resources held by the address repository.
func (c *Config) Close() {
	if c.closeRepo != nil {
		c.closeRepo()
	}
}

func (c *Config) addressRepository() (domain.AddressRepository, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repo, err := dbbadger.NewAddressRepository(datadir, log.New())
			if err != nil {
				return nil, err
			}
			c.repo = repo
			c.closeRepo = repo.Close
		default:
			c.repo = inmemory.NewAddressRepository()
		}
	}
	return c.repo, nil
}

func (c *Config) transactionService() (TransactionService, error) {
	if c.txSvc == nil {
		opts := NewTransactionServiceOpts{
			ProtocolMagic:  c.ProtocolMagic,
			FeeConstant:    c.FeeConstant,
			FeeCoefficient: c.FeeCoefficient,
			Signer:         c.Signer,
		}
		if c.Explorer != nil {
			opts.Broadcaster = c.Explorer
		}
		svc, err := NewTransactionService(opts)
		if err != nil {
			return nil, err
		}
		c.txSvc = svc
	}
	return c.txSvc, nil
}
