package explorer

import (
	"context"
)

// AddressSet is a set of addresses.
type AddressSet map[string]struct{}

// NewAddressSet returns a set holding the given addresses.
func NewAddressSet(addresses ...string) AddressSet {
	s := make(AddressSet, len(addresses))
	for _, addr := range addresses {
		s[addr] = struct{}{}
	}
	return s
}

// Has returns whether addr is in the set.
func (s AddressSet) Has(addr string) bool {
	_, ok := s[addr]
	return ok
}

// Service is the representation of a blockchain explorer that tells which
// addresses have ever been involved in a transaction, and broadcasts
// signed transactions.
//
// An error from any of the queries must never be read as "unused": callers
// propagate it.
type Service interface {
	// IsAnyAddressUsed returns whether at least one of the given addresses
	// appears in the history of the chain.
	IsAnyAddressUsed(ctx context.Context, addresses []string) (bool, error)
	// FilterUsedAddresses returns the subset of used addresses.
	FilterUsedAddresses(ctx context.Context, addresses []string) (AddressSet, error)
	// SubmitTransaction broadcasts the given signed transaction in hex format
	// and returns its id.
	SubmitTransaction(ctx context.Context, txHex string) (string, error)
}
