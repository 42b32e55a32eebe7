// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/operator-search/internal/client"
	"github.com/pdiddy/operator-search/internal/httputil"
	"github.com/pdiddy/operator-search/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Query a running operator search API",
	Long: `Search sends GET {base_url}/search?query=...&limit=... to the API and
prints the result. The query is sent as typed; validation is the server's job.
Without --limit the default limit (10) is sent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{"client.base_url": "base-url"}); err != nil {
		return err
	}
	cfg := loadConfig()
	format, _ := cmd.Flags().GetString("format")

	c, err := client.New(cfg.Client, nil)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	var resp *client.Response
	if cmd.Flags().Changed("limit") {
		limit, _ := cmd.Flags().GetInt("limit")
		resp, err = c.SearchOperatorsLimit(context.Background(), query, limit)
	} else {
		resp, err = c.SearchOperators(context.Background(), query)
	}
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) && len(se.Body) > 0 {
			fmt.Fprintf(os.Stderr, "%s\n", se.Body)
		}
		return err
	}

	return writeSearchOutput(os.Stdout, resp, format)
}

// writeSearchOutput renders resp in the requested format. "raw" writes the
// body bytes untouched; the other formats decode the API envelope first.
func writeSearchOutput(w io.Writer, resp *client.Response, format string) error {
	if format == "raw" {
		_, err := w.Write(resp.Body)
		return err
	}

	out, err := resp.Decode()
	if err != nil {
		return err
	}

	switch format {
	case "table", "":
		formatTable(w, out)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use table, json, yaml or raw", format)
	}
}

func formatTable(w io.Writer, out types.SearchResult) {
	if len(out.Results) == 0 {
		fmt.Fprintln(w, "No operators found.")
		return
	}

	fmt.Fprintf(w, "%-8s  %-45s  %-25s  %-2s  %s\n",
		"Registro", "Name", "City", "UF", "Modalidade")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, op := range out.Results {
		fmt.Fprintf(w, "%-8s  %-45s  %-25s  %-2s  %s\n",
			op.RegistroANS, truncate(op.DisplayName(), 45), truncate(op.Cidade, 25), op.UF, op.Modalidade)
	}

	fmt.Fprintf(w, "\n%d results for %q\n", len(out.Results), out.Query)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	searchCmd.Flags().Int("limit", client.DefaultLimit, "maximum number of results (sent verbatim)")
	searchCmd.Flags().String("format", "table", "output format: table, json, yaml or raw")
	searchCmd.Flags().String("base-url", "", "API base address (default from client.base_url)")

	rootCmd.AddCommand(searchCmd)
}
