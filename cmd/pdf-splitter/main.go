// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-splitter CLI.
// Running pdf-splitter without a subcommand starts an interactive split
// session in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-splitter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	exitError     = 1
	exitInterrupt = 130
)

// rootCmd is the base command for the pdf-splitter CLI. Without a
// subcommand it behaves like split.
var rootCmd = &cobra.Command{
	Use:   "pdf-splitter",
	Short: "Split a PDF into several files by page range",
	Long: `pdf-splitter asks for a directory, lets you pick one of its PDF files,
and then collects a list of output files, each with a name and an inclusive
page range. Every output is written next to the source as <name>.pdf.

Ranges may overlap and need not cover the whole document. A plan collected
interactively can be saved with --save-plan and replayed with --plan.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runSplit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-splitter.yaml or ~/.config/pdf-splitter/pdf-splitter.yaml)")
	rootCmd.PersistentFlags().String("log-level", types.DefaultLogLevel, "diagnostic log level: debug, info, warn, or error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	addSplitFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-splitter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-splitter"))
		}
	}

	setConfigDefaults()
	viper.SetEnvPrefix("PDF_SPLITTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setConfigDefaults() {
	viper.SetDefault("prompt_prefix", types.DefaultPromptPrefix)
	viper.SetDefault("max_outputs", types.DefaultMaxOutputs)
	viper.SetDefault("allow_hidden", false)
	viper.SetDefault("confirm_overwrite", false)
	viper.SetDefault("backend", string(types.BackendPDFCPU))
	viper.SetDefault("validation", string(types.ValidationRelaxed))
	viper.SetDefault("qpdf_path", types.DefaultQPDFPath)
	viper.SetDefault("progress", false)
	viper.SetDefault("log_level", types.DefaultLogLevel)
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", "")
}

// loadConfig decodes the merged flag, env, and file settings.
func loadConfig() (types.SplitterConfig, error) {
	var cfg types.SplitterConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// newLogger returns a logger for diagnostics on w.
func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}

// reportedError marks an error whose message the session already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// exitCode maps the result of a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
		return exitInterrupt
	}
	return exitError
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}
