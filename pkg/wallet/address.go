package wallet

import (
	"fmt"
	"hash/crc32"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/fxamacker/cbor/v2"
	"github.com/tdex-network/byron-wallet/pkg/bufferutil"
	"github.com/tdex-network/byron-wallet/pkg/cborutil"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	// ExtendedPublicKeySize is the size of a public key plus its chain code.
	ExtendedPublicKeySize = bufferutil.ExtendedPublicKeySize
	// AddressRootSize is the size of the digest identifying an address.
	AddressRootSize = 28

	addressTypePublicKey   = 0
	spendingDataPublicKey  = 0
	attributePathPayload   = 1
	attributeProtocolMagic = 2

	mainnetProtocolMagic uint32 = 764824073
)

// Address is the decoded form of a Byron address string.
type Address struct {
	Root       []byte
	Attributes map[uint64][]byte
	Type       uint64
}

// PathPayload returns the encrypted derivation path carried by v1
// addresses.
func (a *Address) PathPayload() ([]byte, error) {
	raw, ok := a.Attributes[attributePathPayload]
	if !ok {
		return nil, ErrMissingPathPayload
	}
	var payload []byte
	if err := cborutil.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	return payload, nil
}

// DerivationPath decrypts the path carried by a v1 address. It fails with
// ErrInvalidPathPayload for addresses of other wallets.
func (a *Address) DerivationPath(hdPassphrase []byte) (DerivationPath, error) {
	payload, err := a.PathPayload()
	if err != nil {
		return nil, err
	}
	return DecryptDerivationPath(payload, hdPassphrase)
}

// ProtocolMagic returns the network magic of the address. Mainnet addresses
// do not carry it.
func (a *Address) ProtocolMagic() (uint32, error) {
	raw, ok := a.Attributes[attributeProtocolMagic]
	if !ok {
		return mainnetProtocolMagic, nil
	}
	var magic uint32
	if err := cborutil.Unmarshal(raw, &magic); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	return magic, nil
}

// ParseAddress decodes a base58 Byron address and checks its crc32.
func ParseAddress(addr string) (*Address, error) {
	buf := base58.Decode(addr)
	if len(buf) <= 0 {
		return nil, ErrInvalidAddress
	}

	var parts []cbor.RawMessage
	if err := cborutil.Unmarshal(buf, &parts); err != nil || len(parts) != 2 {
		return nil, ErrInvalidAddress
	}
	var data cbor.RawMessage
	if err := cborutil.UnembedCBOR(parts[0], &data); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	var checksum uint32
	if err := cborutil.Unmarshal(parts[1], &checksum); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	if crc32.ChecksumIEEE(data) != checksum {
		return nil, ErrInvalidAddressChecksum
	}

	var fields []cbor.RawMessage
	if err := cborutil.Unmarshal(data, &fields); err != nil || len(fields) != 3 {
		return nil, ErrInvalidAddress
	}
	a := &Address{Attributes: make(map[uint64][]byte)}
	if err := cborutil.Unmarshal(fields[0], &a.Root); err != nil ||
		len(a.Root) != AddressRootSize {
		return nil, fmt.Errorf("%w: bad root", ErrInvalidAddress)
	}
	var attrs cborutil.OrderedMap
	if err := cborutil.Unmarshal(fields[1], &attrs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	for _, entry := range attrs {
		var key uint64
		var value []byte
		if err := cborutil.Unmarshal(entry.Key.(cbor.RawMessage), &key); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
		}
		if err := cborutil.Unmarshal(entry.Value.(cbor.RawMessage), &value); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
		}
		a.Attributes[key] = value
	}
	if err := cborutil.Unmarshal(fields[2], &a.Type); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	return a, nil
}

// AddressPacker builds Byron bootstrap addresses for a network.
type AddressPacker struct {
	protocolMagic uint32
}

// NewAddressPacker returns a packer for the network with the given magic.
// Addresses of networks other than mainnet embed the magic.
func NewAddressPacker(protocolMagic uint32) *AddressPacker {
	return &AddressPacker{protocolMagic}
}

// PackAddress returns the base58 address of xpub. For scheme 1 the path is
// encrypted with hdPassphrase and attached to the address, other schemes
// ignore both.
func (p *AddressPacker) PackAddress(
	path DerivationPath, xpub, hdPassphrase []byte, schemeNumber int,
) (string, error) {
	if len(xpub) != ExtendedPublicKeySize {
		return "", ErrInvalidExtendedPublicKey
	}
	scheme, err := DerivationSchemeFromNumber(schemeNumber)
	if err != nil {
		return "", err
	}

	attrs := make(cborutil.OrderedMap, 0, 2)
	if scheme.RequiresHDPassphrase() {
		if len(path) <= 0 {
			return "", ErrNullDerivationPath
		}
		payload, err := EncryptDerivationPath(path, hdPassphrase)
		if err != nil {
			return "", err
		}
		value, err := cborutil.Marshal(payload)
		if err != nil {
			return "", err
		}
		attrs = append(attrs, cborutil.MapEntry{
			Key: uint64(attributePathPayload), Value: value,
		})
	}
	if p.protocolMagic != mainnetProtocolMagic {
		attrs = append(attrs, cborutil.MapEntry{
			Key:   uint64(attributeProtocolMagic),
			Value: cborutil.EncodeUint(uint64(p.protocolMagic)),
		})
	}

	root, err := addressRoot(xpub, attrs)
	if err != nil {
		return "", err
	}
	data, err := cborutil.Marshal([]interface{}{
		root, attrs, uint64(addressTypePublicKey),
	})
	if err != nil {
		return "", err
	}
	embedded, err := cborutil.EmbedCBOR(cbor.RawMessage(data))
	if err != nil {
		return "", err
	}
	buf, err := cborutil.Marshal([]interface{}{embedded, crc32.ChecksumIEEE(data)})
	if err != nil {
		return "", err
	}
	return base58.Encode(buf), nil
}

func addressRoot(xpub []byte, attrs cborutil.OrderedMap) ([]byte, error) {
	buf, err := cborutil.Marshal([]interface{}{
		uint64(addressTypePublicKey),
		[]interface{}{uint64(spendingDataPublicKey), xpub},
		attrs,
	})
	if err != nil {
		return nil, err
	}
	digest := sha3.Sum256(buf)

	h, err := blake2b.New(AddressRootSize, nil)
	if err != nil {
		return nil, err
	}
	h.Write(digest[:])
	return h.Sum(nil), nil
}
