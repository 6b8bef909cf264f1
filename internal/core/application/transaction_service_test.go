package application_test

import (
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/byron-wallet/internal/core/application"
	"github.com/tdex-network/byron-wallet/pkg/transaction"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

var (
	feeConstant    = decimal.NewFromInt(155381)
	feeCoefficient = decimal.RequireFromString("43.946")

	testInputs = []transaction.TxInput{
		{TxID: "308244be8550aea4780e527a377cafbf62bb20f899c8b528c569daa43a6c0544", Index: 1},
		{TxID: "68768ab60f52b0b9b3b4bd84160b2700fad32a0da35b21755cf52273d41451a5", Index: 0},
	}
	testOutputs = []transaction.TxOutput{
		{
			Address: "DdzFFzCqrhswXkREAGRUQRGm3fYnhiujfFsXELpP3FDfSA7atExtvqBuWSk8C5PwD9PnDF7qXJjs9yX48QpkqRVgV4YCfuiVAZN2rEVF",
			Amount:  115078,
		},
	}
	testInputPaths = []wallet.DerivationPath{
		{wallet.Hardened(44), wallet.Hardened(1815), wallet.Hardened(0), 0, 0},
		{wallet.Hardened(44), wallet.Hardened(1815), wallet.Hardened(0), 1, 3},
	}
)

func TestTransactionService(t *testing.T) {
	signer := &mockWitnessSigner{}
	broadcaster := &mockTxBroadcaster{}
	svc := newTransactionService(t, signer, broadcaster)

	tx, err := svc.BuildTransaction(testInputs, testOutputs, nil)
	require.NoError(t, err)

	txid, err := tx.IDBytes()
	require.NoError(t, err)
	msg := transaction.SignatureMessage(transaction.MainnetProtocolMagic, txid)
	for i, path := range testInputPaths {
		xpub, prv := newTestKey(byte(i + 1))
		signer.On("Sign", mock.Anything, path, msg).Return(xpub, ed25519.Sign(prv, msg), nil)
	}

	signedTx, err := svc.SignTransaction(ctx, tx, testInputPaths)
	require.NoError(t, err)
	require.Len(t, signedTx.Witnesses(), len(testInputs))
	require.True(t, svc.VerifyTransaction(signedTx))
	signer.AssertNumberOfCalls(t, "Sign", len(testInputs))

	estimatedFee, err := svc.EstimateFee(tx)
	require.NoError(t, err)
	fee, err := svc.Fee(signedTx)
	require.NoError(t, err)
	require.Equal(t, estimatedFee, fee)

	txHex, err := signedTx.SerializeHex()
	require.NoError(t, err)
	expectedTxID, err := signedTx.ID()
	require.NoError(t, err)
	broadcaster.On("SubmitTransaction", mock.Anything, txHex).Return(expectedTxID, nil)

	broadcastTxID, err := svc.BroadcastTransaction(ctx, signedTx)
	require.NoError(t, err)
	require.Equal(t, expectedTxID, broadcastTxID)
}

func TestFailingSignTransaction(t *testing.T) {
	t.Run("paths length mismatch", func(t *testing.T) {
		signer := &mockWitnessSigner{}
		svc := newTransactionService(t, signer, nil)
		tx, err := svc.BuildTransaction(testInputs, testOutputs, nil)
		require.NoError(t, err)

		signedTx, err := svc.SignTransaction(ctx, tx, testInputPaths[:1])
		require.ErrorIs(t, err, application.ErrInvalidInputPathsLength)
		require.Nil(t, signedTx)
		signer.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid witness", func(t *testing.T) {
		signer := &mockWitnessSigner{}
		svc := newTransactionService(t, signer, nil)
		tx, err := svc.BuildTransaction(testInputs, testOutputs, nil)
		require.NoError(t, err)

		xpub, prv := newTestKey(1)
		signer.On("Sign", mock.Anything, mock.Anything, mock.Anything).
			Return(xpub, ed25519.Sign(prv, []byte("not the tx")), nil)

		signedTx, err := svc.SignTransaction(ctx, tx, testInputPaths)
		require.ErrorIs(t, err, application.ErrInvalidWitness)
		require.Nil(t, signedTx)
	})

	t.Run("signer error", func(t *testing.T) {
		signerErr := errors.New("user rejected")
		signer := &mockWitnessSigner{}
		signer.On("Sign", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil, signerErr)
		svc := newTransactionService(t, signer, nil)
		tx, err := svc.BuildTransaction(testInputs, testOutputs, nil)
		require.NoError(t, err)

		signedTx, err := svc.SignTransaction(ctx, tx, testInputPaths)
		require.ErrorIs(t, err, signerErr)
		require.Nil(t, signedTx)
	})

	t.Run("missing signer", func(t *testing.T) {
		svc := newTransactionService(t, nil, nil)
		tx, err := svc.BuildTransaction(testInputs, testOutputs, nil)
		require.NoError(t, err)

		signedTx, err := svc.SignTransaction(ctx, tx, testInputPaths)
		require.ErrorIs(t, err, application.ErrNullWitnessSigner)
		require.Nil(t, signedTx)
	})
}

func TestFailingBroadcastTransaction(t *testing.T) {
	svc := newTransactionService(t, nil, nil)
	tx, err := svc.BuildTransaction(testInputs, testOutputs, nil)
	require.NoError(t, err)
	signedTx, err := transaction.NewSignedTransaction(tx, nil)
	require.NoError(t, err)

	txid, err := svc.BroadcastTransaction(ctx, signedTx)
	require.ErrorIs(t, err, application.ErrNullTxBroadcaster)
	require.Empty(t, txid)
}

func TestFailingNewTransactionService(t *testing.T) {
	svc, err := application.NewTransactionService(application.NewTransactionServiceOpts{
		FeeConstant:    feeConstant,
		FeeCoefficient: decimal.Zero,
	})
	require.ErrorIs(t, err, transaction.ErrInvalidFeeCoefficient)
	require.Nil(t, svc)
}

func newTransactionService(
	t *testing.T, signer *mockWitnessSigner, broadcaster *mockTxBroadcaster,
) application.TransactionService {
	opts := application.NewTransactionServiceOpts{
		ProtocolMagic:  transaction.MainnetProtocolMagic,
		FeeConstant:    feeConstant,
		FeeCoefficient: feeCoefficient,
	}
	if signer != nil {
		opts.Signer = signer
	}
	if broadcaster != nil {
		opts.Broadcaster = broadcaster
	}
	svc, err := application.NewTransactionService(opts)
	require.NoError(t, err)
	return svc
}

// newTestKey returns an ed25519 key whose extended public key carries a
// dummy chain code.
func newTestKey(seed byte) ([]byte, ed25519.PrivateKey) {
	prv := ed25519.NewKeyFromSeed(repeatByte(seed, ed25519.SeedSize))
	xpub := append(append([]byte{}, prv.Public().(ed25519.PublicKey)...), repeatByte(^seed, 32)...)
	return xpub, prv
}
