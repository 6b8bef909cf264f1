package bufferutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedBytesFromHex(t *testing.T) {
	txid := "308244BE8550AEA4780E527A377CAFBF62BB20F899C8B528C569DAA43A6C0544"

	buf, err := TxIDToBytes(txid)
	require.NoError(t, err)
	assert.Len(t, buf, HashSize)
	assert.Equal(t, strings.ToLower(txid), TxIDFromBytes(buf))

	_, err = TxIDToBytes(txid[:62])
	assert.Error(t, err)

	_, err = PublicKeyToBytes("zz")
	assert.Error(t, err)

	_, err = SignatureToBytes(strings.Repeat("00", 64))
	assert.NoError(t, err)
}

func TestClone(t *testing.T) {
	assert.Nil(t, Clone(nil))

	src := []byte{1, 2, 3}
	dst := Clone(src)
	dst[0] = 9
	assert.Equal(t, byte(1), src[0])
}
