package cborutil

import (
	"encoding/hex"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndefiniteArray(t *testing.T) {
	tests := []struct {
		arr      IndefiniteArray
		expected string
	}{
		{IndefiniteArray{}, "9fff"},
		{IndefiniteArray{uint64(1), uint64(2)}, "9f0102ff"},
		{IndefiniteArray{[]byte{0xaa}, IndefiniteArray{uint64(0)}}, "9f41aa9f00ffff"},
	}
	for _, tt := range tests {
		buf, err := Marshal(tt.arr)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, hex.EncodeToString(buf))

		items, err := SplitIndefiniteArray(buf)
		require.NoError(t, err)
		assert.Len(t, items, len(tt.arr))
	}
}

func TestFailingSplitIndefiniteArray(t *testing.T) {
	tests := []struct {
		data string
		err  error
	}{
		{"", ErrTruncated},
		{"820102", ErrNotIndefinite},
		{"a0", ErrUnexpectedType},
		{"9f0102", ErrTruncated},
		{"9f01ff00", ErrTrailingBytes},
	}
	for _, tt := range tests {
		data, _ := hex.DecodeString(tt.data)
		_, err := SplitIndefiniteArray(data)
		assert.ErrorIs(t, err, tt.err, tt.data)
	}
}

func TestEmbedCBOR(t *testing.T) {
	tag, err := EmbedCBOR([]interface{}{uint64(1), uint64(2)})
	require.NoError(t, err)

	buf, err := Marshal(tag)
	require.NoError(t, err)
	assert.Equal(t, "d81843820102", hex.EncodeToString(buf))

	var out []uint64
	require.NoError(t, UnembedCBOR(buf, &out))
	assert.Equal(t, []uint64{1, 2}, out)

	wrongTag, _ := hex.DecodeString("d81943820102")
	err = UnembedCBOR(wrongTag, &out)
	assert.ErrorIs(t, err, ErrUnexpectedTag)
}

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := OrderedMap{
		{Key: uint64(2), Value: []byte{0x02}},
		{Key: uint64(1), Value: []byte{0x01}},
	}
	buf, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "a2024102014101", hex.EncodeToString(buf))

	var decoded OrderedMap
	require.NoError(t, Unmarshal(buf, &decoded))
	require.Len(t, decoded, 2)

	var firstKey uint64
	require.NoError(t, Unmarshal(decoded[0].Key.(cbor.RawMessage), &firstKey))
	assert.Equal(t, uint64(2), firstKey)

	reencoded, err := Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, buf, reencoded)
}

func TestOrderedMapIndefinite(t *testing.T) {
	data, _ := hex.DecodeString("bf0102ff")
	var decoded OrderedMap
	require.NoError(t, Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)

	empty, err := Marshal(OrderedMap{})
	require.NoError(t, err)
	assert.Equal(t, "a0", hex.EncodeToString(empty))
}

func TestHead(t *testing.T) {
	tests := []struct {
		major    byte
		arg      uint64
		expected string
	}{
		{majorUnsigned, 0, "00"},
		{majorUnsigned, 23, "17"},
		{majorUnsigned, 24, "1818"},
		{majorUnsigned, 764824073, "1a2d964a09"},
		{majorBytes, 32, "5820"},
		{majorBytes, 64, "5840"},
		{majorUnsigned, 1 << 40, "1b0000010000000000"},
	}
	for _, tt := range tests {
		head := AppendHead(nil, tt.major, tt.arg)
		assert.Equal(t, tt.expected, hex.EncodeToString(head))

		major, arg, indefinite, n, err := ReadHead(head)
		require.NoError(t, err)
		assert.Equal(t, tt.major, major)
		assert.Equal(t, tt.arg, arg)
		assert.False(t, indefinite)
		assert.Equal(t, len(head), n)
	}

	_, _, _, _, err := ReadHead([]byte{0x1a, 0x00})
	assert.ErrorIs(t, err, ErrTruncated)
}
