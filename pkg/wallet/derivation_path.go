package wallet

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const (
	// HardenedKeyStart is the index of the first hardened child key.
	HardenedKeyStart = hdkeychain.HardenedKeyStart

	// ExternalChain marks receiving addresses, InternalChain change ones.
	ExternalChain = 0
	InternalChain = 1
)

// DerivationPath is an absolute path of the HD tree of a wallet. Its length
// and hardening depend on the derivation scheme that built it.
type DerivationPath []uint32

// Hardened returns the hardened counterpart of index i.
func Hardened(i uint32) uint32 {
	return i | HardenedKeyStart
}

// IsHardened returns whether i is a hardened index.
func IsHardened(i uint32) bool {
	return i >= HardenedKeyStart
}

// ParseDerivationPath converts a path string like m/44'/1815'/0'/0/3 into
// its binary representation. Indexes can be decimal or 0x-prefixed hex, a
// trailing ' marks them hardened. Paths without the m/ prefix are accepted
// as relative ones.
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	if strPath == "" {
		return nil, ErrNullDerivationPath
	}

	elems := strings.Split(strPath, "/")
	if len(elems) < 2 || containsEmptyString(elems) {
		return nil, ErrMalformedDerivationPath
	}
	if strings.TrimSpace(elems[0]) == "m" {
		elems = elems[1:]
	}

	path := make(DerivationPath, 0, len(elems))
	for _, elem := range elems {
		index, err := parseIndex(strings.TrimSpace(elem))
		if err != nil {
			return nil, err
		}
		path = append(path, index)
	}
	return path, nil
}

func parseIndex(elem string) (uint32, error) {
	var offset uint32
	if strings.HasSuffix(elem, "'") {
		offset = HardenedKeyStart
		elem = strings.TrimSpace(strings.TrimSuffix(elem, "'"))
	}

	bigval, ok := new(big.Int).SetString(elem, 0)
	if !ok {
		return 0, fmt.Errorf("%w: invalid elem '%s'", ErrInvalidDerivationPath, elem)
	}

	max := math.MaxUint32 - offset
	if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(max))) > 0 {
		if offset == 0 {
			return 0, fmt.Errorf(
				"%w: elem %v must be in range [0, %d]", ErrInvalidDerivationPath, bigval, max,
			)
		}
		return 0, fmt.Errorf(
			"%w: elem %v must be in hardened range [0, %d]",
			ErrInvalidDerivationPath, bigval, max,
		)
	}
	return offset + uint32(bigval.Uint64()), nil
}

// String returns the canonical m/a'/b/c representation of the path.
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("m")
	for _, index := range path {
		if IsHardened(index) {
			fmt.Fprintf(&b, "/%d'", index-HardenedKeyStart)
			continue
		}
		fmt.Fprintf(&b, "/%d", index)
	}
	return b.String()
}

// Clone returns a copy of the path.
func (path DerivationPath) Clone() DerivationPath {
	return append(DerivationPath{}, path...)
}

func containsEmptyString(elems []string) bool {
	for _, s := range elems {
		if s == "" {
			return true
		}
	}
	return false
}
