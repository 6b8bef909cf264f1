package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHDPassphraseFromXpub(t *testing.T) {
	hdPassphrase, err := HDPassphraseFromXpub(testRootXpub)
	require.NoError(t, err)
	require.Equal(
		t,
		"bdec3ad3374e6f2d57d3b9765a94507d3b98376d1e62a6be34006530f6331a7a",
		hex.EncodeToString(hdPassphrase),
	)

	_, err = HDPassphraseFromXpub(testRootXpub[:32])
	require.ErrorIs(t, err, ErrInvalidExtendedPublicKey)
}

func TestEncryptDecryptDerivationPath(t *testing.T) {
	hdPassphrase, err := HDPassphraseFromXpub(testRootXpub)
	require.NoError(t, err)

	payload, err := EncryptDerivationPath(v1Path, hdPassphrase)
	require.NoError(t, err)
	require.Equal(
		t,
		"7ba2bb1e64c6e2a7e78eb7cd69f453675b42b7df5833a47c62c3c0ef",
		hex.EncodeToString(payload),
	)

	path, err := DecryptDerivationPath(payload, hdPassphrase)
	require.NoError(t, err)
	require.Equal(t, v1Path, path)
}

func TestFailingDecryptDerivationPath(t *testing.T) {
	hdPassphrase, err := HDPassphraseFromXpub(testRootXpub)
	require.NoError(t, err)
	payload, err := EncryptDerivationPath(v1Path, hdPassphrase)
	require.NoError(t, err)

	tampered := append([]byte{}, payload...)
	tampered[0] ^= 0x01

	tests := []struct {
		name         string
		payload      []byte
		hdPassphrase []byte
		err          error
	}{
		{"null passphrase", payload, nil, ErrNullHDPassphrase},
		{"short passphrase", payload, hdPassphrase[:31], ErrInvalidHDPassphrase},
		{"wrong passphrase", payload, repeatByte(0x22, HDPassphraseSize), ErrInvalidPathPayload},
		{"tampered payload", tampered, hdPassphrase, ErrInvalidPathPayload},
	}
	for _, tt := range tests {
		_, err := DecryptDerivationPath(tt.payload, tt.hdPassphrase)
		require.ErrorIs(t, err, tt.err, tt.name)
	}
}
