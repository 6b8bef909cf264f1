package domain

import (
	"fmt"

	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

const (
	// ExternalChain is the chain of receiving addresses.
	ExternalChain uint32 = wallet.ExternalChain
	// InternalChain is the chain of change addresses.
	InternalChain uint32 = wallet.InternalChain
)

// DerivedAddress is an address derived for the local Index of an account
// chain, along with the absolute path of the key behind it. WalletID ties
// the address to the key material it was derived from.
type DerivedAddress struct {
	WalletID     string
	AccountIndex uint32
	Chain        uint32
	Index        uint32
	Path         wallet.DerivationPath
	Address      string
}

// Key uniquely identifies the address among all wallets.
func (a DerivedAddress) Key() string {
	return AddressKey(a.WalletID, a.AccountIndex, a.Chain, a.Index)
}

// AddressKey returns the key of the address with the given coordinates.
func AddressKey(walletID string, accountIndex, chain, index uint32) string {
	return fmt.Sprintf("%s/%d/%d/%d", walletID, accountIndex, chain, index)
}

// AddressInfo describes a discovered address.
type AddressInfo struct {
	Address        string
	DerivationPath string
	IsUsed         bool
}
