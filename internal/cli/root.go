// Package cli wires the htmlhl library into a thin command-line front end:
// one cobra command per library operation, each loading configuration the
// same layered way internal/config does, then handing off to
// internal/engine. The CLI is explicitly non-authoritative — every
// behavior it exposes is already implemented, and independently testable,
// in the library it wraps.
package cli

import (
	"fmt"

	"github.com/readlark/htmlhl/internal/config"
	"github.com/readlark/htmlhl/internal/engine"
	"github.com/readlark/htmlhl/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	markerTag string
	logLevel  string
)

// NewRootCommand builds the htmlhl root command and attaches its
// subcommands (apply, extract-text, ingest-markdown, cache).
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "htmlhl",
		Short:   "Durable HTML highlighting engine",
		Long:    "htmlhl re-applies saved text highlights to HTML documents that may have changed since the highlight was made, using a three-strategy anchor resolution cascade.",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .htmlhl.{yaml,toml,json} in cwd or $HOME)")
	rootCmd.PersistentFlags().StringVar(&markerTag, "marker-tag", "", "override the configured marker element tag name")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newExtractTextCommand())
	rootCmd.AddCommand(newIngestMarkdownCommand())
	rootCmd.AddCommand(newCacheCommand())

	return rootCmd
}

// loadEngine loads configuration (file + env, per internal/config's layered
// scheme), applies any persistent-flag overrides, builds a logger, and
// constructs an Engine ready for a single command invocation.
func loadEngine() (*engine.Engine, *zap.Logger, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if markerTag != "" {
		cfg.MarkerTag = markerTag
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.New(cfg.LogLevel)
	eng, err := engine.New(cfg.ToEngineConfig(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("construct engine: %w", err)
	}
	return eng, log, nil
}
