package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/rota/internal/config"
	"github.com/okian/rota/pkg/logger"
	"github.com/okian/rota/pkg/metrics"
)

var version = "dev"

// globals holds state shared by subcommands after PersistentPreRunE.
type globals struct {
	configPath string
	debug      bool
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "rota",
		Short: "rota - rotation-fair meeting role assignment",
		Long: `rota assigns recurring meeting parts to people from a roster.

Candidates are ranked by how long ago they last did a part of the same
rotation group; an operator picks from the ranked list or skips. Every
choice is appended to the assignment history, which is saved after each
meeting date.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML config file (overrides ROTA_CONFIG)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return g.init(cmd)
	}

	cmd.AddCommand(newAssignCommand(g))
	cmd.AddCommand(newRankCommand(g))
	cmd.AddCommand(newHistoryCommand(g))
	return cmd
}

func (g *globals) init(cmd *cobra.Command) error {
	if err := logger.InitWithWriter(os.Stderr); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.LoadFrom(cmd.Context(), g.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	g.cfg = cfg

	level := cfg.LogLevel
	if g.debug {
		level = "debug"
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(
		metrics.WithNamespace(cfg.Metrics.Namespace),
		metrics.WithConstLabels(cfg.Metrics.Labels),
	)
	return nil
}
