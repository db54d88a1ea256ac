package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/badfoxmc/cardano-api/internal/api"
	"github.com/badfoxmc/cardano-api/internal/config"
	"github.com/badfoxmc/cardano-api/internal/export"
	"github.com/badfoxmc/cardano-api/internal/policy"
	"github.com/badfoxmc/cardano-api/internal/wallet"
	"github.com/badfoxmc/cardano-api/internal/worker"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			cfg := config.Load()
			svc := newServices(cfg)

			if svc.cache != nil {
				go worker.NewCacheSweeper(svc.cache, cfg.RegistryCacheTTL).Run(ctx)
			}

			srv := api.NewServer(cfg.HTTPPort, svc.handler(), svc.metrics, cfg.RequestTimeout)

			errCh := make(chan error, 1)
			go func() {
				slog.Info("HTTP server listening", "port", cfg.HTTPPort)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				return fmt.Errorf("HTTP server: %w", err)
			}
			slog.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("HTTP server shutdown: %w", err)
			}

			slog.Info("shutdown complete")
			return nil
		},
	}
}

func walletCommand() *cli.Command {
	return &cli.Command{
		Name:      "wallet",
		Usage:     "resolve a wallet identifier and print it as JSON",
		ArgsUsage: "<stake key | address | $handle | hex address>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all-addresses", Usage: "list every address of the stake key"},
			&cli.BoolFlag{Name: "stake-pool", Usage: "include the delegated pool"},
			&cli.BoolFlag{Name: "tokens", Usage: "include held tokens"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("wallet takes exactly one identifier", 2)
			}
			svc := newServices(config.Load())

			w, err := svc.wallets.GetWallet(c.Context, c.Args().First(), wallet.Options{
				AllAddresses:  c.Bool("all-addresses"),
				WithStakePool: c.Bool("stake-pool"),
				WithTokens:    c.Bool("tokens"),
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(w)
		},
	}
}

func exportPolicyCommand() *cli.Command {
	return &cli.Command{
		Name:  "export-policy",
		Usage: "write the tokens of a policy to an XLSX file or a Google Sheet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "policy", Usage: "policy ID", Required: true},
			&cli.BoolFlag{Name: "all", Usage: "enumerate every page of the policy"},
			&cli.BoolFlag{Name: "ranks", Usage: "include rarity ranks"},
			&cli.BoolFlag{Name: "burned", Usage: "include burned tokens"},
			&cli.StringFlag{Name: "out", Usage: "XLSX output path"},
			&cli.StringFlag{Name: "sheet-id", Usage: "Google spreadsheet ID"},
			&cli.StringFlag{Name: "credentials", Usage: "service account JSON file for Google Sheets"},
		},
		Action: func(c *cli.Context) error {
			writer, err := sheetWriter(c)
			if err != nil {
				return err
			}

			svc := newServices(config.Load())
			exporter := export.NewService(svc.policies, writer)

			_, err = exporter.Export(c.Context, c.String("policy"), policy.Options{
				AllTokens:  c.Bool("all"),
				WithBurned: c.Bool("burned"),
				WithRanks:  c.Bool("ranks"),
			})
			return err
		},
	}
}

func sheetWriter(c *cli.Context) (export.SheetWriter, error) {
	out, sheetID := c.String("out"), c.String("sheet-id")
	switch {
	case out != "" && sheetID != "":
		return nil, cli.Exit("--out and --sheet-id are mutually exclusive", 2)
	case out != "":
		return export.NewXLSXWriter(out), nil
	case sheetID != "":
		path := c.String("credentials")
		if path == "" {
			return nil, cli.Exit("--credentials is required with --sheet-id", 2)
		}
		creds, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading credentials: %w", err)
		}
		return export.NewSheetsWriter(c.Context, sheetID, string(creds))
	default:
		return nil, cli.Exit("one of --out or --sheet-id is required", 2)
	}
}
