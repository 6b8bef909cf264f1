package domain

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const walletIDSize = 16

// NewWalletID fingerprints the key material of a wallet: the extended
// public key its addresses derive from, the number of its derivation scheme
// and the network protocol magic. Changing any of them changes every
// address, so it changes the id too.
func NewWalletID(xpub []byte, schemeNumber int, protocolMagic uint32) string {
	buf := make([]byte, 0, len(xpub)+8)
	buf = append(buf, xpub...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(schemeNumber))
	buf = binary.BigEndian.AppendUint32(buf, protocolMagic)

	h, _ := blake2b.New(walletIDSize, nil)
	h.Write(buf)
	return hex.EncodeToString(h.Sum(nil))
}
