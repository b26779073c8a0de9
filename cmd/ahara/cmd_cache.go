package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/cache"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the scored chart cache",
		Long: `Manage the scored chart cache.

The cache stores chart results so that rescoring an unchanged chart under
unchanged configuration skips scoring. Entries are keyed by the chart bytes,
patient defaults and scorer settings.`,
	}

	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the scored chart cache",
		Long: `Clear all cached chart results.

The directory defaults to cache.dir from .ahara.yaml. It is only removed when
it holds nothing but cache entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cacheDir == "" {
				pc, err := loadProject()
				if err != nil {
					return err
				}
				cacheDir = pc.Cache.Dir
			}

			// Resolve to absolute path
			absDir, err := filepath.Abs(cacheDir)
			if err != nil {
				return fmt.Errorf("resolving cache directory: %w", err)
			}

			c := cache.New(absDir)
			n := c.Len()
			if err := c.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s (%d entries)\n", absDir, n)
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Cache directory to clear (default from .ahara.yaml)")

	return cmd
}
