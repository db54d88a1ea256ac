package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "cardano-api",
		Usage: "query Cardano wallets, tokens, policies, pools and transactions",
		Commands: []*cli.Command{
			serveCommand(),
			walletCommand(),
			exportPolicyCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("cardano-api: %v", err)
	}
}
