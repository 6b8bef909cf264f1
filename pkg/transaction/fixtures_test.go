package transaction

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	fixtureInputs = []TxInput{
		{"308244BE8550AEA4780E527A377CAFBF62BB20F899C8B528C569DAA43A6C0544", 1},
		{"2B051E692725C5319EB438EE48E8BFA0B7448EDF7045D732F3148B6875963103", 1},
		{"68768AB60F52B0B9B3B4BD84160B2700FAD32A0DA35B21755CF52273D41451A5", 0},
	}
	fixtureOutputs = []TxOutput{
		{"DdzFFzCqrhswXkREAGRUQRGm3fYnhiujfFsXELpP3FDfSA7atExtvqBuWSk8C5PwD9PnDF7qXJjs9yX48QpkqRVgV4YCfuiVAZN2rEVF", 115078},
		{"DdzFFzCqrhsxJZXW35PCYcF6RJ5QLoEmJvsTpV5SKy5xWPyyqyvFFxD2EwAABynutBrw3AcR9Mx5QaEYHRtAWgf2VL6U3G1yngYCD9zi", 3100719},
	}
	fixtureWitnesses = []TxWitness{
		{
			"140D31459D822826515315CE965AEA82276130A9503D1465177352A8AE232171CC8BDCD93AD67107B1BDFAE759C241E2F40C7ADD308FFDD83B59D41B03343CDA",
			"72ED9F3CD4EEDCD761B8F8008968A321E713578EB8E7788ABA4904003F24FE98BEDA0A83BD6CB3A5538EBA828E1C28661640E02BFACC743935B01FC97793C205",
		},
		{
			"D8C6472977695C1234D6DEB2210484B76E12AF5C05AD18C2FF4A768F85BF07F0C6AA501B0A25D0E7C18A342E5ECC0B7DEE9A26EBFDF6E6B0A3D3606EEB1D0C2D",
			"8EBF3201644269B4B73FF06C67EBC9DF7AC4B5FF9C2F25F393618AA21DF2744797540158E220F38E106C0653CEB57811E403DF3811A5A12CC0DCE0CCB7A2F20E",
		},
		{
			"6C230A4F5FBD0A546E6232F84AF0E2B7BB3FC1C8E3A5A2B88280DAC7B6D79645304A2A9A3EB17AB87A8D98CD953C0EBF98B251280B102B30CAD825C6094E0404",
			"2293E1223D56710F84669CB5D15E20198B49B8A88F72CDD44A0B9439690A8E2461A32058741DF3ECBA909256A1949179FB986B5C26718C20D16A1D6AFB271D00",
		},
	}

	fixtureTxHex = "839f8200d8185824825820308244be8550aea4780e527a377cafbf62bb20f899c8b528c569daa43a6c0544018200d81858248258202b051e692725c5319eb438ee48e8bfa0b7448edf7045d732f3148b6875963103018200d818582482582068768ab60f52b0b9b3b4bd84160b2700fad32a0da35b21755cf52273d41451a500ff9f8282d818584283581c87ad538289fa277a2cffd59d0a47bc0a00aa1590abdc7da5ee430af0a101581e581c2eab4601bfe583bcfbcab94f1633746ff248c220b2755a1097e6923a001a4cdfa2921a0001c1868282d818584283581c8d952ac1cf14871eb339bb0fd40011ef363d5ea5ae1a3daf99125242a101581e581c0c54a726973aaa120b823e212f3953625c49edd7e3e9c07808affb16001a9b919e631a002f502fffa0"
	fixtureTxID  = "6d4470051958285efd392e02b83643227e0176ff4c7db399b5c0b1a6eeb70f9e"

	fixtureSignedTxHex = "82" + fixtureTxHex + "838200d8185885825840140d31459d822826515315ce965aea82276130a9503d1465177352a8ae232171cc8bdcd93ad67107b1bdfae759c241e2f40c7add308ffdd83b59d41b03343cda584072ed9f3cd4eedcd761b8f8008968a321e713578eb8e7788aba4904003f24fe98beda0a83bd6cb3a5538eba828e1c28661640e02bfacc743935b01fc97793c2058200d8185885825840d8c6472977695c1234d6deb2210484b76e12af5c05ad18c2ff4a768f85bf07f0c6aa501b0a25d0e7c18a342e5ecc0b7dee9a26ebfdf6e6b0a3d3606eeb1d0c2d58408ebf3201644269b4b73ff06c67ebc9df7ac4b5ff9c2f25f393618aa21df2744797540158e220f38e106c0653ceb57811e403df3811a5a12cc0dce0ccb7a2f20e8200d81858858258406c230a4f5fbd0a546e6232f84af0e2b7bb3fc1c8e3a5a2b88280dac7b6d79645304a2a9a3eb17ab87a8d98cd953c0ebf98b251280b102b30cad825c6094e040458402293e1223d56710f84669cb5d15e20198b49b8a88f72cdd44a0b9439690a8e2461a32058741df3ecba909256a1949179fb986b5c26718c20d16a1d6afb271d00"
	// 155381 + 43.946 * 715 = 186802.39
	fixtureSignedTxFee uint64 = 186803
)

func newFixtureTx(t *testing.T) *UnsignedTransaction {
	tx, err := NewUnsignedTransaction(NewUnsignedTransactionOpts{
		Inputs:  fixtureInputs,
		Outputs: fixtureOutputs,
	})
	require.NoError(t, err)
	return tx
}

type testKey struct {
	xpub []byte
	prv  ed25519.PrivateKey
}

// newTestKey returns a deterministic key whose extended public key is the
// ed25519 public key followed by a dummy chain code.
func newTestKey(seed byte) testKey {
	s := make([]byte, ed25519.SeedSize)
	for i := range s {
		s[i] = seed
	}
	prv := ed25519.NewKeyFromSeed(s)
	chainCode := make([]byte, 32)
	for i := range chainCode {
		chainCode[i] = ^seed
	}
	xpub := append(append([]byte{}, prv.Public().(ed25519.PublicKey)...), chainCode...)
	return testKey{xpub, prv}
}

func (k testKey) sign(t *testing.T, protocolMagic uint32, tx *UnsignedTransaction) TxWitness {
	id, err := tx.IDBytes()
	require.NoError(t, err)
	sig := ed25519.Sign(k.prv, SignatureMessage(protocolMagic, id))
	return NewTxWitness(k.xpub, sig)
}

func mustDecodeHex(t *testing.T, str string) []byte {
	buf, err := hex.DecodeString(str)
	require.NoError(t, err)
	return buf
}
