package transaction

import (
	"github.com/tdex-network/byron-wallet/pkg/cborutil"
	"golang.org/x/crypto/blake2b"
)

// Hasher computes a fixed size content digest. Implementations must be
// stateless and unkeyed.
type Hasher interface {
	Hash(data []byte) []byte
}

// Blake2b256 is the Hasher used for transaction ids.
type Blake2b256 struct{}

func (Blake2b256) Hash(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

// DefaultHasher is used whenever a transaction is built without an explicit
// Hasher.
var DefaultHasher Hasher = Blake2b256{}

// HashObject canonically encodes v and hashes the resulting bytes.
func HashObject(h Hasher, v interface{}) ([]byte, error) {
	buf, err := cborutil.Marshal(v)
	if err != nil {
		return nil, err
	}
	return h.Hash(buf), nil
}
