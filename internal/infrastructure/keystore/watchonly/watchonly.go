// Package watchonly implements a CryptoProvider that holds only the extended
// public key of a v2 account. Addresses are obtained by soft derivation of
// the chain and index levels, so the provider can never sign.
package watchonly

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"filippo.io/edwards25519"
	"github.com/tdex-network/byron-wallet/pkg/bufferutil"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

const (
	purpose  = 44
	coinType = 1815

	tagSoftKey       = 0x02
	tagSoftChainCode = 0x03

	publicKeySize = 32
	// Only the first 28 bytes of the HMAC left half enter the key tweak.
	tweakSize = 28
)

var (
	// ErrInvalidAccountXpub ...
	ErrInvalidAccountXpub = errors.New("invalid account extended public key")
	// ErrHardenedDerivation is returned for paths that need the private key.
	ErrHardenedDerivation = errors.New(
		"hardened derivation requires the private key",
	)
	// ErrForeignPath is returned for paths not belonging to the account.
	ErrForeignPath = errors.New("derivation path does not belong to account")
	// ErrHDPassphraseUnsupported ...
	ErrHDPassphraseUnsupported = errors.New(
		"hd passphrase is not available in watch-only mode",
	)
)

// CryptoProvider derives extended public keys from the xpub of account
// m/44'/1815'/account'.
type CryptoProvider struct {
	accountIndex uint32
	publicKey    *edwards25519.Point
	chainCode    []byte

	lock   sync.RWMutex
	chains map[uint32][]byte
}

// NewCryptoProvider returns a provider for the given 64 byte account xpub.
func NewCryptoProvider(accountXpub []byte, accountIndex uint32) (*CryptoProvider, error) {
	if len(accountXpub) != bufferutil.ExtendedPublicKeySize {
		return nil, ErrInvalidAccountXpub
	}
	if wallet.IsHardened(accountIndex) {
		return nil, fmt.Errorf("%w: account index must not be hardened", ErrInvalidAccountXpub)
	}
	point, err := new(edwards25519.Point).SetBytes(accountXpub[:publicKeySize])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountXpub, err)
	}

	return &CryptoProvider{
		accountIndex: accountIndex,
		publicKey:    point,
		chainCode:    bufferutil.Clone(accountXpub[publicKeySize:]),
		chains:       make(map[uint32][]byte),
	}, nil
}

// DeriveXpub returns the xpub at path, that must have the form
// m/44'/1815'/account'/chain/index.
func (p *CryptoProvider) DeriveXpub(
	ctx context.Context, path wallet.DerivationPath,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(path) != 5 {
		return nil, fmt.Errorf("%w: %s", ErrForeignPath, path)
	}
	if path[0] != wallet.Hardened(purpose) ||
		path[1] != wallet.Hardened(coinType) ||
		path[2] != wallet.Hardened(p.accountIndex) {
		return nil, fmt.Errorf("%w: %s", ErrForeignPath, path)
	}
	chain, index := path[3], path[4]
	if wallet.IsHardened(chain) || wallet.IsHardened(index) {
		return nil, ErrHardenedDerivation
	}

	chainXpub, err := p.chainXpub(chain)
	if err != nil {
		return nil, err
	}
	point, err := new(edwards25519.Point).SetBytes(chainXpub[:publicKeySize])
	if err != nil {
		return nil, err
	}
	return deriveSoft(point, chainXpub[publicKeySize:], index)
}

func (p *CryptoProvider) DerivationScheme() wallet.DerivationScheme {
	scheme, _ := wallet.NewDerivationScheme(wallet.SchemeV2)
	return scheme
}

func (p *CryptoProvider) HDPassphrase(context.Context) ([]byte, error) {
	return nil, ErrHDPassphraseUnsupported
}

// chainXpub memoizes the xpub of m/44'/1815'/account'/chain.
func (p *CryptoProvider) chainXpub(chain uint32) ([]byte, error) {
	p.lock.RLock()
	xpub, ok := p.chains[chain]
	p.lock.RUnlock()
	if ok {
		return xpub, nil
	}

	xpub, err := deriveSoft(p.publicKey, p.chainCode, chain)
	if err != nil {
		return nil, err
	}

	p.lock.Lock()
	p.chains[chain] = xpub
	p.lock.Unlock()
	return xpub, nil
}

// deriveSoft computes the non-hardened child of (A, c) at index i:
// A' = A + 8*zL*B and c' = right half of HMAC-SHA512(c, 0x03 || A || i).
func deriveSoft(
	publicKey *edwards25519.Point, chainCode []byte, index uint32,
) ([]byte, error) {
	pubkey := publicKey.Bytes()
	data := make([]byte, 0, 1+publicKeySize+4)
	data = append(data, tagSoftKey)
	data = append(data, pubkey...)
	data = binary.LittleEndian.AppendUint32(data, index)

	z := hmacSHA512(chainCode, data)
	data[0] = tagSoftChainCode
	childChainCode := hmacSHA512(chainCode, data)[32:]

	tweak, err := edwards25519.NewScalar().SetCanonicalBytes(mul8(z[:tweakSize]))
	if err != nil {
		return nil, err
	}
	child := new(edwards25519.Point).Add(
		publicKey, new(edwards25519.Point).ScalarBaseMult(tweak),
	)

	return append(child.Bytes(), childChainCode...), nil
}

// mul8 returns 8*x as a 32 byte little endian number, x being little endian.
func mul8(x []byte) []byte {
	out := make([]byte, 32)
	var carry byte
	for i, b := range x {
		out[i] = b<<3 | carry
		carry = b >> 5
	}
	out[len(x)] = carry
	return out
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
