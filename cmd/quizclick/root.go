package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/quizclick/internal/config"
	"github.com/jackzampolin/quizclick/internal/home"
	"github.com/jackzampolin/quizclick/internal/report"
	"github.com/jackzampolin/quizclick/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string

	output report.OutputFormat
)

var rootCmd = &cobra.Command{
	Use:   "quizclick",
	Short: "Answer on-screen multiple-choice quizzes with vision and language models",
	Long: `quizclick watches a fixed region of the screen, reads the multiple-choice
question shown there with a vision model, asks a language model to pick
the answer, and clicks it.

Each cycle:
  - Captures the configured screen region
  - Extracts the question and options (vision model)
  - Selects one of A, B, C, D as strict JSON (text model)
  - Prints the question, choice and reason
  - Clicks the configured point for that choice

Any failure stops the run.`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.quizclick/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "quizclick home directory (default: ~/.quizclick)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		f, err := report.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		output = f
		return nil
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the home directory and loads configuration from it.
func loadConfig() (*config.Manager, *home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}
	mgr, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return nil, nil, err
	}
	return mgr, h, nil
}

// newLogger builds the stderr logger. Stdout carries only reports.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})), nil
}
