// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/operator-search/internal/operators"
)

var loadCmd = &cobra.Command{
	Use:   "load [csv]",
	Short: "Import an operator CSV into the store",
	Long: `Load reads a ';'-delimited operator CSV (the ANS "operadoras ativas"
export) and upserts every row into the SQLite store by Registro_ANS.
Rows that cannot be parsed are reported and skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{"store.path": "db"}); err != nil {
		return err
	}
	cfg := loadConfig()
	csvPath := cfg.Store.CSVPath
	if len(args) > 0 {
		csvPath = args[0]
	}

	store, err := operators.NewStore(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.ImportFile(context.Background(), csvPath, os.Stderr)
	if err != nil {
		return err
	}

	total, err := store.Count(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d operators (%d skipped); store holds %d\n", summary.Imported, summary.Skipped, total)
	return nil
}

func init() {
	loadCmd.Flags().String("db", "data/operators.db", "SQLite database path")

	rootCmd.AddCommand(loadCmd)
}
