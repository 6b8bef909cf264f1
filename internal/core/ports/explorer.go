package ports

import (
	"context"

	"github.com/tdex-network/byron-wallet/pkg/explorer"
)

// UsageOracle tells whether addresses have ever been used on chain.
type UsageOracle interface {
	IsAnyAddressUsed(ctx context.Context, addresses []string) (bool, error)
	FilterUsedAddresses(
		ctx context.Context, addresses []string,
	) (explorer.AddressSet, error)
}

// TxBroadcaster submits signed transactions to the network.
type TxBroadcaster interface {
	SubmitTransaction(ctx context.Context, txHex string) (string, error)
}
