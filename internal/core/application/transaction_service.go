package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/byron-wallet/internal/core/ports"
	"github.com/tdex-network/byron-wallet/pkg/transaction"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
)

// TransactionService builds, prices, signs, verifies and broadcasts Byron
// transactions.
type TransactionService interface {
	BuildTransaction(
		ins []transaction.TxInput, outs []transaction.TxOutput,
		attrs transaction.Attributes,
	) (*transaction.UnsignedTransaction, error)
	EstimateFee(tx *transaction.UnsignedTransaction) (uint64, error)
	Fee(tx *transaction.SignedTransaction) (uint64, error)
	SignTransaction(
		ctx context.Context, tx *transaction.UnsignedTransaction,
		inputPaths []wallet.DerivationPath,
	) (*transaction.SignedTransaction, error)
	VerifyTransaction(tx *transaction.SignedTransaction) bool
	BroadcastTransaction(
		ctx context.Context, tx *transaction.SignedTransaction,
	) (string, error)
}

// NewTransactionServiceOpts is the struct given to NewTransactionService.
type NewTransactionServiceOpts struct {
	ProtocolMagic  uint32
	FeeConstant    decimal.Decimal
	FeeCoefficient decimal.Decimal
	// Signer and Broadcaster are optional, the related operations fail
	// without them.
	Signer      ports.WitnessSigner
	Broadcaster ports.TxBroadcaster
}

type transactionService struct {
	protocolMagic uint32
	feeEstimator  *transaction.FeeEstimator
	verifier      *transaction.Verifier
	signer        ports.WitnessSigner
	broadcaster   ports.TxBroadcaster
}

func NewTransactionService(opts NewTransactionServiceOpts) (TransactionService, error) {
	feeEstimator, err := transaction.NewFeeEstimator(
		opts.FeeConstant, opts.FeeCoefficient,
	)
	if err != nil {
		return nil, err
	}

	return &transactionService{
		protocolMagic: opts.ProtocolMagic,
		feeEstimator:  feeEstimator,
		verifier:      transaction.NewVerifier(opts.ProtocolMagic, nil),
		signer:        opts.Signer,
		broadcaster:   opts.Broadcaster,
	}, nil
}

func (s *transactionService) BuildTransaction(
	ins []transaction.TxInput, outs []transaction.TxOutput,
	attrs transaction.Attributes,
) (*transaction.UnsignedTransaction, error) {
	return transaction.NewUnsignedTransaction(transaction.NewUnsignedTransactionOpts{
		Inputs:     ins,
		Outputs:    outs,
		Attributes: attrs,
	})
}

func (s *transactionService) EstimateFee(
	tx *transaction.UnsignedTransaction,
) (uint64, error) {
	return s.feeEstimator.EstimateFee(tx)
}

func (s *transactionService) Fee(tx *transaction.SignedTransaction) (uint64, error) {
	if tx == nil {
		return 0, transaction.ErrNullTransaction
	}
	return s.feeEstimator.Fee(tx)
}

// SignTransaction asks the signer for one witness per input, in input
// order, using the key at the corresponding path. Requests are sequential
// since signing devices serve one at a time.
func (s *transactionService) SignTransaction(
	ctx context.Context, tx *transaction.UnsignedTransaction,
	inputPaths []wallet.DerivationPath,
) (*transaction.SignedTransaction, error) {
	if s.signer == nil {
		return nil, ErrNullWitnessSigner
	}
	if tx == nil {
		return nil, transaction.ErrNullTransaction
	}
	if len(inputPaths) != len(tx.Inputs()) {
		return nil, ErrInvalidInputPathsLength
	}

	txid, err := tx.IDBytes()
	if err != nil {
		return nil, err
	}
	msg := transaction.SignatureMessage(s.protocolMagic, txid)

	witnesses := make([]transaction.TxWitness, 0, len(inputPaths))
	for i, path := range inputPaths {
		xpub, sig, err := s.signer.Sign(ctx, path, msg)
		if err != nil {
			return nil, fmt.Errorf("failed to sign input %d: %w", i, err)
		}
		witnesses = append(witnesses, transaction.NewTxWitness(xpub, sig))
	}

	signedTx, err := transaction.NewSignedTransaction(tx, witnesses)
	if err != nil {
		return nil, err
	}
	if !s.verifier.Verify(signedTx) {
		return nil, ErrInvalidWitness
	}

	log.WithField("inputs", len(witnesses)).Debug("transaction signed")
	return signedTx, nil
}

// VerifyTransaction checks every witness of tx. A transaction without
// witnesses is reported as valid.
func (s *transactionService) VerifyTransaction(tx *transaction.SignedTransaction) bool {
	return s.verifier.Verify(tx)
}

func (s *transactionService) BroadcastTransaction(
	ctx context.Context, tx *transaction.SignedTransaction,
) (string, error) {
	if s.broadcaster == nil {
		return "", ErrNullTxBroadcaster
	}
	if tx == nil {
		return "", transaction.ErrNullTransaction
	}
	txHex, err := tx.SerializeHex()
	if err != nil {
		return "", err
	}
	return s.broadcaster.SubmitTransaction(ctx, txHex)
}
