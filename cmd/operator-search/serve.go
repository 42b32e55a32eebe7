// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/operator-search/internal/operators"
	"github.com/pdiddy/operator-search/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the operator search API",
	Long: `Serve opens the operator store, loads the operator CSV if the store is
empty, and serves GET /api/search until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"server.addr": "addr",
		"store.path":  "db",
		"store.csv":   "csv",
	}); err != nil {
		return err
	}
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := operators.NewStore(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.LoadIfEmpty(ctx, cfg.Store.CSVPath, os.Stderr); err != nil {
		return err
	}

	return server.New(cfg.Server, store, logger).Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", ":8010", "listen address")
	serveCmd.Flags().String("db", "data/operators.db", "SQLite database path")
	serveCmd.Flags().String("csv", "data/operadoras.csv", "operator CSV loaded when the store is empty")

	rootCmd.AddCommand(serveCmd)
}
