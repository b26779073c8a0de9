package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/engine"
	"github.com/vaidya/ahara/internal/projectconfig"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ahara",
		Short: "Ahara - Ayurvedic diet chart compliance scoring",
		Long: `Ahara scores diet charts against Ayurvedic principles.

It checks food combinations, taste balance, thermal qualities, nutrition and
digestive fire (agni), and combines them into a single compliance score with
per-meal detail and improvement suggestions.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newLookupCommand())
	cmd.AddCommand(newNutritionCommand())
	cmd.AddCommand(newAgniCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newCacheCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}

// loadProject reads .ahara.yaml starting from the working directory.
func loadProject() (*projectconfig.ProjectConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	pc, err := projectconfig.Load(wd)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded project config", "dir", wd, "scorers", pc.ScorersEnabled(), "cache", pc.CacheEnabled())
	return pc, nil
}

// newEngine loads project configuration and builds a scoring engine from it.
func newEngine() (*engine.Engine, *projectconfig.ProjectConfig, error) {
	pc, err := loadProject()
	if err != nil {
		return nil, nil, err
	}
	e, err := engine.FromProject(pc, slog.Default())
	if err != nil {
		return nil, nil, err
	}
	return e, pc, nil
}
