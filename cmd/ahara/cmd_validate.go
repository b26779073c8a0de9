package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/validation"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check chart, history and symptom files against their schemas",
		Long: `Check chart, history and symptom files against their schemas.

The kind of each file is detected from its top-level keys: meals for charts,
days for agni history, symptoms for agni questionnaires.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				kind, errs, err := validation.ValidateFile(path)
				if err != nil {
					return err
				}
				if len(errs) == 0 {
					fmt.Fprintf(out, "✓ %s (%s)\n", path, kind)
					continue
				}
				invalid++
				fmt.Fprintf(out, "✗ %s (%s)\n", path, kind)
				for _, e := range errs {
					fmt.Fprintf(out, "    %s\n", e)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", invalid, len(args))
			}
			return nil
		},
	}
}
