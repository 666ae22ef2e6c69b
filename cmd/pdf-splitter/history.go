// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-splitter/internal/history"
	"github.com/pdiddy/pdf-splitter/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded splits",
	Long: `History lists the outputs recorded in the split history database,
newest first. Recording is enabled with history.enabled in the config file
or PDF_SPLITTER_HISTORY_ENABLED in the environment.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records to show")
	historyCmd.Flags().String("source", "", "only show splits of this source file")
	historyCmd.Flags().Bool("json", false, "output JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	source, _ := cmd.Flags().GetString("source")
	if source != "" {
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
	}

	records, err := store.List(cmd.Context(), history.ListOptions{Source: source, Limit: limit})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), records, jsonOutput)
}

func formatHistory(w io.Writer, records []types.SplitRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No splits recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-30s  %-30s  %-9s  %s\n",
		"Date", "Source", "Output", "Pages", "Backend")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, r := range records {
		fmt.Fprintf(w, "%-20s  %-30s  %-30s  %-9s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(filepath.Base(r.Source), 30),
			truncate(filepath.Base(r.Output), 30),
			fmt.Sprintf("%d-%d", r.FirstPage, r.LastPage),
			r.Backend)
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
	return nil
}

// truncate shortens s to n characters, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
