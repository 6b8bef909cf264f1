package transaction

import (
	"crypto/ed25519"
	"encoding/hex"
)

// SignatureVerifier checks a signature over message for publicKey.
type SignatureVerifier interface {
	Verify(message, signature, publicKey []byte) bool
}

// Ed25519Verifier verifies EdDSA signatures over Curve25519. Extended
// public keys are accepted, only their first 32 bytes are used.
type Ed25519Verifier struct{}

func (Ed25519Verifier) Verify(message, signature, publicKey []byte) bool {
	if len(publicKey) < ed25519.PublicKeySize ||
		len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(
		ed25519.PublicKey(publicKey[:ed25519.PublicKeySize]), message, signature,
	)
}

// Verifier validates the witnesses of signed transactions for a network.
type Verifier struct {
	protocolMagic uint32
	sigVerifier   SignatureVerifier
}

// NewVerifier returns a Verifier for the given network. A nil sigVerifier
// defaults to Ed25519Verifier.
func NewVerifier(protocolMagic uint32, sigVerifier SignatureVerifier) *Verifier {
	if sigVerifier == nil {
		sigVerifier = Ed25519Verifier{}
	}
	return &Verifier{protocolMagic, sigVerifier}
}

// Verify returns whether every witness carries a valid signature of the
// transaction id. It never fails: malformed witnesses just yield false.
//
// A transaction without witnesses verifies as true since the result is
// the AND over an empty set. This is a known weakness kept on purpose:
// callers that need at least one witness per input must check it.
func (v *Verifier) Verify(tx *SignedTransaction) bool {
	if tx == nil || tx.transaction == nil {
		return false
	}
	txID, err := tx.IDBytes()
	if err != nil {
		return false
	}
	msg := SignatureMessage(v.protocolMagic, txID)

	for _, w := range tx.witnesses {
		pubkey, err := hex.DecodeString(w.PublicKey)
		if err != nil {
			return false
		}
		sig, err := hex.DecodeString(w.Signature)
		if err != nil {
			return false
		}
		if !v.sigVerifier.Verify(msg, sig, pubkey) {
			return false
		}
	}
	return true
}
