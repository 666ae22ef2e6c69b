// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pdiddy/pdf-splitter/internal/engine"
	"github.com/pdiddy/pdf-splitter/internal/history"
	"github.com/pdiddy/pdf-splitter/internal/plan"
	"github.com/pdiddy/pdf-splitter/internal/session"
	"github.com/pdiddy/pdf-splitter/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a PDF interactively or from a saved plan",
	Long: `Split runs one split session. It asks for a directory (or uses --dir),
lists the PDF files in it, and collects the output files to create. With
--plan the outputs come from a YAML plan file and nothing is asked.`,
	Args: cobra.NoArgs,
	RunE: runSplit,
}

func init() {
	addSplitFlags(splitCmd)
	rootCmd.AddCommand(splitCmd)
}

func addSplitFlags(cmd *cobra.Command) {
	cmd.Flags().String("dir", "", "directory containing the PDF files (skips the directory prompt)")
	cmd.Flags().String("plan", "", "run non-interactively from a YAML plan file")
	cmd.Flags().String("save-plan", "", "write the collected plan to this YAML file")
	cmd.Flags().String("backend", "", "PDF engine: pdfcpu or qpdf")
	cmd.Flags().Bool("progress", false, "show a progress bar while generating outputs")
}

// splitConfig loads the configuration and applies the command's flags.
func splitConfig(cmd *cobra.Command) (types.SplitterConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("dir") {
		cfg.Dir, _ = cmd.Flags().GetString("dir")
	}
	if cmd.Flags().Changed("backend") {
		backend, _ := cmd.Flags().GetString("backend")
		cfg.Backend = types.Backend(backend)
	}
	if cmd.Flags().Changed("progress") {
		cfg.Progress, _ = cmd.Flags().GetBool("progress")
	}
	return cfg, nil
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := splitConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.EngineConfig, log)
	if err != nil {
		return err
	}

	opts := []session.Option{session.WithLogger(log)}
	if w := progressWriter(cfg.Progress); w != nil {
		opts = append(opts, session.WithProgress(w))
	}
	if path, _ := cmd.Flags().GetString("save-plan"); path != "" {
		opts = append(opts, session.WithSavePlan(path))
	}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			log.WithError(err).Warn("split history disabled")
		} else {
			defer store.Close()
			opts = append(opts, session.WithRecorder(store))
		}
	}

	var pl *plan.Plan
	if path, _ := cmd.Flags().GetString("plan"); path != "" {
		if pl, err = plan.ReadFile(path); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{"backend": eng.Name(), "dir": cfg.Dir}).Debug("starting session")
	s := session.New(cfg, eng, cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
	if pl != nil {
		err = s.RunPlan(cmd.Context(), pl)
	} else {
		err = s.Run(cmd.Context())
	}
	if err != nil {
		return reportedError{err: fmt.Errorf("split session: %w", err)}
	}
	return nil
}

// progressWriter returns stderr when a progress bar was requested and
// stderr is a terminal.
func progressWriter(enabled bool) io.Writer {
	if !enabled || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return os.Stderr
}
