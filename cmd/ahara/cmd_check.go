package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/incompat"
)

func newCheckCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <food> <food>...",
		Short: "Check foods eaten together for incompatible combinations",
		Long: `Check foods eaten together for incompatible combinations (viruddha ahara).

Every pair of foods is checked against the incompatibility table. Conflicting
pairs are listed with alternatives and timing suggestions.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := newEngine()
			if err != nil {
				return err
			}

			check := e.CheckMealIncompatibilities(args)
			var alts *incompat.Alternatives
			if len(check.IncompatiblePairs) > 0 {
				a := e.SuggestAlternatives(check.IncompatiblePairs)
				alts = &a
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					Check        incompat.MealResult    `json:"check"`
					Alternatives *incompat.Alternatives `json:"alternatives,omitempty"`
				}{check, alts})
			}
			writeCheck(cmd.OutOrStdout(), args, check, alts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func writeCheck(w io.Writer, foods []string, check incompat.MealResult, alts *incompat.Alternatives) {
	fmt.Fprintf(w, "Foods: %s\n", strings.Join(foods, ", "))
	if len(check.IncompatiblePairs) == 0 {
		fmt.Fprintln(w, "✓ No incompatible combinations found")
		return
	}

	safe := "no"
	if check.SafeToEat {
		safe = "yes"
	}
	fmt.Fprintf(w, "Severity: %s  Safe to eat: %s  Incompatible pairs: %d\n",
		check.Severity, safe, len(check.IncompatiblePairs))
	if msg := check.Recommendation.Message; msg != "" {
		fmt.Fprintf(w, "%s\n", msg)
	}
	fmt.Fprintln(w)

	t := &table{header: []string{"PAIR", "ALTERNATIVES", "TIMING"}}
	for _, a := range alts.Pairs {
		timing := ""
		if len(a.TimingSuggestions) > 0 {
			timing = a.TimingSuggestions[0]
		}
		t.add(
			fmt.Sprintf("✗ %s + %s", a.Pair.A, a.Pair.B),
			truncateName(strings.Join(a.Alternatives, ", "), 40),
			timing,
		)
	}
	t.write(w)

	fmt.Fprintln(w, "\nConflicts:")
	for _, c := range check.Conflicts {
		fmt.Fprintf(w, "  - %s × %s: %s\n", c.CategoryA, c.CategoryB, c.Reason)
	}
	if len(alts.GeneralAdvice) > 0 {
		fmt.Fprintln(w, "\nGeneral advice:")
		for _, g := range alts.GeneralAdvice {
			fmt.Fprintf(w, "  - %s\n", g)
		}
	}
}
