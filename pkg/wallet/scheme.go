package wallet

import (
	"fmt"
)

// SchemeType identifies a derivation scheme version.
type SchemeType string

const (
	// SchemeV1 is the Daedalus legacy scheme. Addresses carry their own
	// derivation path, encrypted with the wallet HD passphrase.
	SchemeV1 SchemeType = "v1"
	// SchemeV2 is the Icarus scheme, BIP44 paths under purpose 44' and coin
	// type 1815'.
	SchemeV2 SchemeType = "v2"

	purposeBIP44    = 44
	coinTypeCardano = 1815
)

// DerivationScheme describes how relative (account, chain, index) triples
// map onto the HD tree and how addresses are packed for them.
type DerivationScheme interface {
	Type() SchemeType
	// Number is the numeric tag given to the address packer.
	Number() int
	// StartAddressIndex is the first address index in use for a chain.
	StartAddressIndex() uint32
	RequiresHDPassphrase() bool
	// ToAbsoluteDerivationPath turns [account, chain, index] into an
	// absolute path.
	ToAbsoluteDerivationPath(relative []uint32) (DerivationPath, error)
}

// NewDerivationScheme returns the scheme for the given type.
func NewDerivationScheme(t SchemeType) (DerivationScheme, error) {
	switch t {
	case SchemeV1:
		return schemeV1{}, nil
	case SchemeV2:
		return schemeV2{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDerivationScheme, t)
	}
}

// DerivationSchemeFromNumber returns the scheme with the given numeric tag.
func DerivationSchemeFromNumber(n int) (DerivationScheme, error) {
	switch n {
	case 1:
		return schemeV1{}, nil
	case 2:
		return schemeV2{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownDerivationScheme, n)
	}
}

type schemeV1 struct{}

func (schemeV1) Type() SchemeType           { return SchemeV1 }
func (schemeV1) Number() int                { return 1 }
func (schemeV1) StartAddressIndex() uint32  { return 1 }
func (schemeV1) RequiresHDPassphrase() bool { return true }

// Legacy wallets have no chains: the path is [account', index'] whatever
// the chain flag, so change addresses are regular ones.
func (schemeV1) ToAbsoluteDerivationPath(relative []uint32) (DerivationPath, error) {
	account, _, index, err := splitRelativePath(relative)
	if err != nil {
		return nil, err
	}
	return DerivationPath{Hardened(account), Hardened(index)}, nil
}

type schemeV2 struct{}

func (schemeV2) Type() SchemeType           { return SchemeV2 }
func (schemeV2) Number() int                { return 2 }
func (schemeV2) StartAddressIndex() uint32  { return 0 }
func (schemeV2) RequiresHDPassphrase() bool { return false }

func (schemeV2) ToAbsoluteDerivationPath(relative []uint32) (DerivationPath, error) {
	account, chain, index, err := splitRelativePath(relative)
	if err != nil {
		return nil, err
	}
	return DerivationPath{
		Hardened(purposeBIP44),
		Hardened(coinTypeCardano),
		Hardened(account),
		chain,
		index,
	}, nil
}

func splitRelativePath(relative []uint32) (account, chain, index uint32, err error) {
	if len(relative) != 3 {
		err = ErrInvalidRelativePath
		return
	}
	account, chain, index = relative[0], relative[1], relative[2]
	if IsHardened(account) || IsHardened(index) {
		err = fmt.Errorf("%w: indexes must not be hardened", ErrInvalidRelativePath)
		return
	}
	if chain != ExternalChain && chain != InternalChain {
		err = ErrInvalidChain
	}
	return
}
