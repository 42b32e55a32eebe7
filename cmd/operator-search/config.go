// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/operator-search/pkg/types"
)

func init() {
	viper.SetDefault("client.base_url", types.DefaultBaseURL)
	viper.SetDefault("client.timeout", 30*time.Second)
	viper.SetDefault("client.user_agent", "")
	viper.SetDefault("server.addr", ":8010")
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("store.path", "data/operators.db")
	viper.SetDefault("store.csv", "data/operadoras.csv")
	viper.SetDefault("log.level", "info")
}

// loadConfig assembles the component configs from flags, environment,
// config file and defaults, in viper's precedence order.
func loadConfig() types.Config {
	return types.Config{
		Client: types.ClientConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("client.timeout"),
				UserAgent: viper.GetString("client.user_agent"),
			},
			BaseURL: viper.GetString("client.base_url"),
		},
		Server: types.ServerConfig{
			Addr:            viper.GetString("server.addr"),
			AllowedOrigins:  viper.GetStringSlice("server.allowed_origins"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Store: types.StoreConfig{
			Path:    viper.GetString("store.path"),
			CSVPath: viper.GetString("store.csv"),
		},
	}
}

// bindFlags binds config keys to the running command's flags. Several
// commands share a flag name (--db), so binding happens per run rather than
// in init, where the last registration would win.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}
