package wallet

import (
	"crypto/cipher"
	"crypto/sha512"
	"fmt"

	"github.com/tdex-network/byron-wallet/pkg/cborutil"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// HDPassphraseSize is the size of the key used to encrypt paths.
	HDPassphraseSize = chacha20poly1305.KeySize

	hdPassphraseSalt       = "address-hashing"
	hdPassphraseIterations = 500
)

var pathPayloadNonce = []byte("serokellfore")

// HDPassphraseFromXpub derives the v1 wallet passphrase from the root
// extended public key.
func HDPassphraseFromXpub(rootXpub []byte) ([]byte, error) {
	if len(rootXpub) != ExtendedPublicKeySize {
		return nil, ErrInvalidExtendedPublicKey
	}
	return pbkdf2.Key(
		rootXpub, []byte(hdPassphraseSalt), hdPassphraseIterations,
		HDPassphraseSize, sha512.New,
	), nil
}

// EncryptDerivationPath seals the indefinite cbor array of path with the
// given passphrase. Byron uses a constant nonce, the passphrase is unique
// per wallet.
func EncryptDerivationPath(path DerivationPath, hdPassphrase []byte) ([]byte, error) {
	aead, err := newPathCipher(hdPassphrase)
	if err != nil {
		return nil, err
	}

	items := make(cborutil.IndefiniteArray, 0, len(path))
	for _, index := range path {
		items = append(items, index)
	}
	plaintext, err := cborutil.Marshal(items)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, pathPayloadNonce, plaintext, nil), nil
}

// DecryptDerivationPath opens a payload built by EncryptDerivationPath.
func DecryptDerivationPath(payload, hdPassphrase []byte) (DerivationPath, error) {
	aead, err := newPathCipher(hdPassphrase)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, pathPayloadNonce, payload, nil)
	if err != nil {
		return nil, ErrInvalidPathPayload
	}

	rawItems, err := cborutil.SplitIndefiniteArray(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPathPayload, err)
	}
	path := make(DerivationPath, 0, len(rawItems))
	for _, raw := range rawItems {
		var index uint32
		if err := cborutil.Unmarshal(raw, &index); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPathPayload, err)
		}
		path = append(path, index)
	}
	return path, nil
}

func newPathCipher(hdPassphrase []byte) (cipher.AEAD, error) {
	if len(hdPassphrase) <= 0 {
		return nil, ErrNullHDPassphrase
	}
	if len(hdPassphrase) != HDPassphraseSize {
		return nil, ErrInvalidHDPassphrase
	}
	return chacha20poly1305.New(hdPassphrase)
}
