package main

import (
	"github.com/tdex-network/byron-wallet/internal/core/application"
	"github.com/tdex-network/byron-wallet/pkg/transaction"
	"github.com/urfave/cli/v2"
)

var (
	tx = cli.Command{
		Name:  "tx",
		Usage: "inspect and broadcast signed Byron transactions",
		Subcommands: []*cli.Command{
			txInspectCmd, txSubmitCmd,
		},
	}

	txInspectCmd = &cli.Command{
		Name:      "inspect",
		Usage:     "show id, fee and witness validity of a signed transaction",
		ArgsUsage: "<signed tx hex>",
		Action:    txInspectAction,
	}
	txSubmitCmd = &cli.Command{
		Name:      "submit",
		Usage:     "broadcast a signed transaction through the explorer",
		ArgsUsage: "<signed tx hex>",
		Action:    txSubmitAction,
	}
)

type txInfo struct {
	TxID      string                 `json:"txid"`
	Size      int                    `json:"size"`
	Fee       uint64                 `json:"fee"`
	Verified  bool                   `json:"verified"`
	Inputs    []transaction.TxInput  `json:"inputs"`
	Outputs   []transaction.TxOutput `json:"outputs"`
	Witnesses int                    `json:"witnesses"`
}

func txInspectAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	appConfig, err := newAppConfig()
	if err != nil {
		return err
	}

	info, err := inspectTransaction(appConfig.TransactionService(), ctx.Args().First())
	if err != nil {
		return err
	}

	printJSON(info)
	return nil
}

func txSubmitAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	signedTx, err := transaction.DecodeSignedTransactionHex(ctx.Args().First())
	if err != nil {
		return err
	}
	appConfig, err := newAppConfig()
	if err != nil {
		return err
	}

	txid, err := appConfig.TransactionService().BroadcastTransaction(
		ctx.Context, signedTx,
	)
	if err != nil {
		return err
	}

	printJSON(map[string]string{"txid": txid})
	return nil
}

func inspectTransaction(
	svc application.TransactionService, txHex string,
) (*txInfo, error) {
	signedTx, err := transaction.DecodeSignedTransactionHex(txHex)
	if err != nil {
		return nil, err
	}
	txid, err := signedTx.ID()
	if err != nil {
		return nil, err
	}
	buf, err := signedTx.Serialize()
	if err != nil {
		return nil, err
	}
	fee, err := svc.Fee(signedTx)
	if err != nil {
		return nil, err
	}

	return &txInfo{
		TxID:      txid,
		Size:      len(buf),
		Fee:       fee,
		Verified:  svc.VerifyTransaction(signedTx),
		Inputs:    signedTx.Transaction().Inputs(),
		Outputs:   signedTx.Transaction().Outputs(),
		Witnesses: len(signedTx.Witnesses()),
	}, nil
}
