package main

import (
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/byron-wallet/config"
	"github.com/tdex-network/byron-wallet/internal/core/application"
	"github.com/tdex-network/byron-wallet/internal/core/domain"
	"github.com/tdex-network/byron-wallet/internal/infrastructure/keystore/watchonly"
	"github.com/tdex-network/byron-wallet/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var (
	address = cli.Command{
		Name:  "address",
		Usage: "pack and discover Byron addresses",
		Subcommands: []*cli.Command{
			addressPackCmd, addressDiscoverCmd, addressParseCmd,
		},
	}

	addressPackCmd = &cli.Command{
		Name:  "pack",
		Usage: "pack the address of an extended public key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "xpub",
				Usage:    "the hex encoded 64 bytes extended public key",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "path",
				Usage:    "the absolute derivation path of the key, like m/44'/1815'/0'/0/0",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "root-xpub",
				Usage: "the hex encoded root extended public key, required by scheme v1",
			},
		},
		Action: addressPackAction,
	}
	addressDiscoverCmd = &cli.Command{
		Name:  "discover",
		Usage: "discover the addresses of a v2 account with the gap limit protocol",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "account-xpub",
				Usage:    "the hex encoded extended public key of the account",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "change",
				Usage: "discover change addresses instead of receiving ones",
			},
		},
		Action: addressDiscoverAction,
	}
	addressParseCmd = &cli.Command{
		Name:      "parse",
		Usage:     "show the content of a Byron address",
		ArgsUsage: "<address>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root-xpub",
				Usage: "the hex encoded root extended public key to decrypt the v1 path",
			},
		},
		Action: addressParseAction,
	}
)

func addressPackAction(ctx *cli.Context) error {
	scheme, err := config.GetDerivationScheme()
	if err != nil {
		return err
	}
	xpub, err := hex.DecodeString(ctx.String("xpub"))
	if err != nil {
		return fmt.Errorf("invalid xpub: %w", err)
	}
	path, err := wallet.ParseDerivationPath(ctx.String("path"))
	if err != nil {
		return err
	}

	var hdPassphrase []byte
	if scheme.RequiresHDPassphrase() {
		if hdPassphrase, err = hdPassphraseFromFlag(ctx); err != nil {
			return err
		}
	}

	packer := wallet.NewAddressPacker(config.GetProtocolMagic())
	addr, err := packer.PackAddress(path, xpub, hdPassphrase, scheme.Number())
	if err != nil {
		return err
	}

	printJSON(map[string]string{
		"address":         addr,
		"derivation_path": path.String(),
	})
	return nil
}

func addressDiscoverAction(ctx *cli.Context) error {
	accountXpub, err := hex.DecodeString(ctx.String("account-xpub"))
	if err != nil {
		return fmt.Errorf("invalid account xpub: %w", err)
	}
	accountIndex := uint32(config.GetInt(config.AccountIndexKey))
	provider, err := watchonly.NewCryptoProvider(accountXpub, accountIndex)
	if err != nil {
		return err
	}

	appConfig, err := newAppConfig()
	if err != nil {
		return err
	}
	appConfig.CryptoProvider = provider
	defer appConfig.Close()

	walletID := domain.NewWalletID(
		accountXpub, provider.DerivationScheme().Number(), appConfig.ProtocolMagic,
	)
	manager, err := appConfig.AddressManager(domain.AddressManagerConfig{
		WalletID:              walletID,
		AccountIndex:          accountIndex,
		IsChange:              ctx.Bool("change"),
		GapLimit:              config.GetInt(config.GapLimitKey),
		DefaultAddressCount:   config.GetInt(config.DefaultAddressCountKey),
		DisableCaching:        config.GetBool(config.DisableAddressCachingKey),
		DerivationConcurrency: config.GetInt(config.DerivationConcurrencyKey),
	})
	if err != nil {
		return err
	}

	addresses, err := manager.DiscoverAddressesWithMeta(ctx.Context)
	if err != nil {
		return err
	}
	log.Debugf("discovered %d addresses", len(addresses))

	printJSON(addresses)
	return nil
}

func addressParseAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	addr, err := wallet.ParseAddress(ctx.Args().First())
	if err != nil {
		return err
	}

	info := map[string]interface{}{
		"root": hex.EncodeToString(addr.Root),
		"type": addr.Type,
	}
	if magic, err := addr.ProtocolMagic(); err == nil {
		info["protocol_magic"] = magic
	}
	if ctx.IsSet("root-xpub") {
		hdPassphrase, err := hdPassphraseFromFlag(ctx)
		if err != nil {
			return err
		}
		path, err := addr.DerivationPath(hdPassphrase)
		if err != nil {
			return err
		}
		info["derivation_path"] = path.String()
	}

	printJSON(info)
	return nil
}

func hdPassphraseFromFlag(ctx *cli.Context) ([]byte, error) {
	rootXpub, err := hex.DecodeString(ctx.String("root-xpub"))
	if err != nil {
		return nil, fmt.Errorf("invalid root xpub: %w", err)
	}
	return wallet.HDPassphraseFromXpub(rootXpub)
}

func newAppConfig() (*application.Config, error) {
	explorerSvc, err := config.GetExplorer()
	if err != nil {
		return nil, err
	}
	a, b, err := config.GetLinearFee()
	if err != nil {
		return nil, err
	}
	return &application.Config{
		DBType:         config.GetString(config.DBTypeKey),
		DBConfig:       config.GetDBDir(),
		ProtocolMagic:  config.GetProtocolMagic(),
		FeeConstant:    a,
		FeeCoefficient: b,
		Explorer:       explorerSvc,
	}, nil
}
