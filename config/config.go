package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/tdex-network/byron-wallet/pkg/explorer"
	"github.com/tdex-network/byron-wallet/pkg/explorer/cardano"
	"github.com/tdex-network/byron-wallet/pkg/transaction"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

const (
	// NetworkKey is the network to use. Either "mainnet" or "testnet"
	NetworkKey = "NETWORK"
	// ProtocolMagicKey overrides the protocol magic of the selected network
	ProtocolMagicKey = "PROTOCOL_MAGIC"
	// FeeConstantKey is the constant term of the linear fee, in lovelace
	FeeConstantKey = "FEE_CONSTANT"
	// FeeCoefficientKey is the per-byte term of the linear fee, in lovelace
	FeeCoefficientKey = "FEE_COEFFICIENT"
	// DerivationSchemeKey is the derivation scheme of the wallet, v1 or v2
	DerivationSchemeKey = "DERIVATION_SCHEME"
	// AccountIndexKey is the non-hardened index of the account to use
	AccountIndexKey = "ACCOUNT_INDEX"
	// GapLimitKey is the number of consecutive unused addresses after which
	// address discovery stops
	GapLimitKey = "GAP_LIMIT"
	// DefaultAddressCountKey is the number of addresses derived up front
	DefaultAddressCountKey = "DEFAULT_ADDRESS_COUNT"
	// DisableAddressCachingKey forces every address to be derived again
	DisableAddressCachingKey = "DISABLE_ADDRESS_CACHING"
	// DerivationConcurrencyKey bounds concurrent derivations, 0 means no bound
	DerivationConcurrencyKey = "DERIVATION_CONCURRENCY"
	// ExplorerEndpointKey is the endpoint of the Byron explorer REST API
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// ExplorerRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// ExplorerMaxAddressesPerRequestKey is the size of the chunks of
	// addresses sent to the explorer
	ExplorerMaxAddressesPerRequestKey = "EXPLORER_MAX_ADDRESSES_PER_REQUEST"
	// ExplorerRequestsPerSecondKey rate limits explorer requests, negative
	// values disable the limit
	ExplorerRequestsPerSecondKey = "EXPLORER_REQUESTS_PER_SECOND"
	// DatadirKey is the local data directory to store the address cache
	DatadirKey = "DATADIR"
	// DBTypeKey is the type of address cache, either "inmemory" or "badger"
	DBTypeKey = "DB_TYPE"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"

	MainnetNetwork = "mainnet"
	TestnetNetwork = "testnet"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("byron-wallet", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("BYRON")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, MainnetNetwork)
	vip.SetDefault(FeeConstantKey, "155381")
	vip.SetDefault(FeeCoefficientKey, "43.946")
	vip.SetDefault(DerivationSchemeKey, string(wallet.SchemeV2))
	vip.SetDefault(AccountIndexKey, 0)
	vip.SetDefault(GapLimitKey, 20)
	vip.SetDefault(DefaultAddressCountKey, 10)
	vip.SetDefault(DisableAddressCachingKey, false)
	vip.SetDefault(DerivationConcurrencyKey, 0)
	vip.SetDefault(ExplorerEndpointKey, "https://explorer2.adalite.io")
	vip.SetDefault(ExplorerRequestTimeoutKey, 15000)
	vip.SetDefault(ExplorerMaxAddressesPerRequestKey, cardano.DefaultMaxAddressesPerRequest)
	vip.SetDefault(ExplorerRequestsPerSecondKey, cardano.DefaultRequestsPerSecond)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DBTypeKey, "inmemory")
	vip.SetDefault(LogLevelKey, 4)
}

// InitConfig validates the current configuration and creates the datadir.
func InitConfig() error {
	if err := validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return initDatadir()
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

// GetProtocolMagic returns the magic of the selected network, unless
// explicitly overridden.
func GetProtocolMagic() uint32 {
	if vip.IsSet(ProtocolMagicKey) {
		return vip.GetUint32(ProtocolMagicKey)
	}
	if GetString(NetworkKey) == TestnetNetwork {
		return transaction.TestnetProtocolMagic
	}
	return transaction.MainnetProtocolMagic
}

// GetLinearFee returns the constant and per-byte terms of the fee.
func GetLinearFee() (decimal.Decimal, decimal.Decimal, error) {
	a, err := decimal.NewFromString(GetString(FeeConstantKey))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("fee constant: %w", err)
	}
	b, err := decimal.NewFromString(GetString(FeeCoefficientKey))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("fee coefficient: %w", err)
	}
	return a, b, nil
}

// GetDerivationScheme ...
func GetDerivationScheme() (wallet.DerivationScheme, error) {
	return wallet.NewDerivationScheme(wallet.SchemeType(GetString(DerivationSchemeKey)))
}

// GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDBDir returns the directory of the badger address cache for the
// selected network.
func GetDBDir() string {
	return filepath.Join(GetDatadir(), GetString(NetworkKey), DbLocation)
}

//GetExplorer ...
func GetExplorer() (explorer.Service, error) {
	return cardano.NewService(cardano.NewServiceOpts{
		Endpoint:               GetString(ExplorerEndpointKey),
		RequestTimeout:         time.Duration(GetInt(ExplorerRequestTimeoutKey)) * time.Millisecond,
		MaxAddressesPerRequest: GetInt(ExplorerMaxAddressesPerRequestKey),
		RequestsPerSecond:      GetInt(ExplorerRequestsPerSecondKey),
	})
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	networkName := GetString(NetworkKey)
	if networkName != MainnetNetwork && networkName != TestnetNetwork {
		return fmt.Errorf(
			"network must be either '%s' or '%s'", MainnetNetwork, TestnetNetwork,
		)
	}

	a, b, err := GetLinearFee()
	if err != nil {
		return err
	}
	if a.IsNegative() {
		return fmt.Errorf("fee constant must not be negative")
	}
	if !b.IsPositive() {
		return fmt.Errorf("fee coefficient must be positive")
	}

	if _, err := GetDerivationScheme(); err != nil {
		return err
	}

	accountIndex := GetInt(AccountIndexKey)
	if accountIndex < 0 || uint32(accountIndex) >= wallet.HardenedKeyStart {
		return fmt.Errorf("account index must be in range [0, %d)", wallet.HardenedKeyStart)
	}

	gapLimit := GetInt(GapLimitKey)
	if gapLimit <= 0 {
		return fmt.Errorf("gap limit must be positive")
	}
	if GetInt(DefaultAddressCountKey) > gapLimit {
		return fmt.Errorf("default address count must not exceed gap limit")
	}
	if GetInt(DerivationConcurrencyKey) < 0 {
		return fmt.Errorf("derivation concurrency must not be negative")
	}

	dbType := GetString(DBTypeKey)
	if dbType != "inmemory" && dbType != "badger" {
		return fmt.Errorf("db type must be either 'inmemory' or 'badger'")
	}

	explorerEndpoint := GetString(ExplorerEndpointKey)
	u, err := url.Parse(explorerEndpoint)
	if err != nil {
		return fmt.Errorf("explorer endpoint is not a valid url: %s", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("explorer endpoint must be an http(s) url")
	}
	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) != "badger" {
		return nil
	}
	return makeDirectoryIfNotExists(GetDBDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
