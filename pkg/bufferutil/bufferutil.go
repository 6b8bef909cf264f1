package bufferutil

import (
	"encoding/hex"
	"fmt"
)

const (
	// HashSize is the size of transaction ids.
	HashSize = 32
	// ExtendedPublicKeySize is public key plus chain code.
	ExtendedPublicKeySize = 64
	// SignatureSize ...
	SignatureSize = 64
)

// FixedBytesFromHex decodes a hex string that must represent exactly size
// bytes. Both lower and upper case are accepted.
func FixedBytesFromHex(str string, size int) ([]byte, error) {
	buffer, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	if len(buffer) != size {
		return nil, fmt.Errorf(
			"expected %d bytes, got %d", size, len(buffer),
		)
	}
	return buffer, nil
}

func TxIDToBytes(str string) ([]byte, error) {
	return FixedBytesFromHex(str, HashSize)
}

func TxIDFromBytes(buffer []byte) string {
	return hex.EncodeToString(buffer)
}

func PublicKeyToBytes(str string) ([]byte, error) {
	return FixedBytesFromHex(str, ExtendedPublicKeySize)
}

func SignatureToBytes(str string) ([]byte, error) {
	return FixedBytesFromHex(str, SignatureSize)
}

// Clone returns a copy of buffer, nil for nil input.
func Clone(buffer []byte) []byte {
	if buffer == nil {
		return nil
	}
	return append([]byte{}, buffer...)
}
