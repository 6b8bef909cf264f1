package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/byron-wallet/config"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "byronwallet"
	app.Usage = "Command line interface for Byron HD wallets"
	app.Before = func(*cli.Context) error {
		log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
		return config.InitConfig()
	}
	app.Commands = append(
		app.Commands,
		&address,
		&tx,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func printJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}

	fmt.Println(string(jsonBytes))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[byronwallet] %v\n", err)
	}
	os.Exit(1)
}
