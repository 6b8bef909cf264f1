package transaction

import (
	"github.com/tdex-network/byron-wallet/pkg/cborutil"
)

const (
	// MainnetProtocolMagic is the Byron mainnet network magic.
	MainnetProtocolMagic uint32 = 764824073
	// TestnetProtocolMagic is the Byron testnet network magic.
	TestnetProtocolMagic uint32 = 1097911063

	// signTagTx is the domain tag of transaction signatures.
	signTagTx = 0x01
)

// SignatureMessage returns the bytes every witness signs for a transaction:
// the tx signature tag, the cbor encoded protocol magic, the head of a 32
// byte string and the raw transaction id. On mainnet the prefix is
// 011a2d964a095820.
func SignatureMessage(protocolMagic uint32, txID []byte) []byte {
	msg := []byte{signTagTx}
	msg = append(msg, cborutil.EncodeUint(uint64(protocolMagic))...)
	msg = append(msg, cborutil.BytesHead(len(txID))...)
	return append(msg, txID...)
}
