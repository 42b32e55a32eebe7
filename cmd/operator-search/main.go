// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the operator-search CLI: the search
// API server, the CSV loader, and a command-line client for the API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/operator-search/internal/envfile"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE from log.level.
var logger = slog.Default()

// rootCmd is the base command for the operator-search CLI.
var rootCmd = &cobra.Command{
	Use:   "operator-search",
	Short: "Search ANS health plan operators",
	Long: `operator-search serves and queries a search API over the registry of
health plan operators published by ANS.

"serve" runs the API (GET /api/search), "load" imports the operator CSV into
the local SQLite store, and "search" queries a running API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applied, err := envfile.Load(".env")
		if err != nil {
			return err
		}

		level, err := parseLevel(viper.GetString("log.level"))
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		if len(applied) > 0 {
			logger.Debug("loaded .env", "keys", applied)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./operator-search.yaml or ~/.config/operator-search/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("operator-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "operator-search"))
		}
	}

	viper.SetEnvPrefix("OPERATOR_SEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
