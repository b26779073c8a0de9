package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/intake"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/validation"
	"github.com/vaidya/ahara/internal/wizard"
)

func newAgniCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agni",
		Short: "Assess digestive fire (agni)",
		Long: `Assess digestive fire (agni).

Classify agni from symptoms, forecast it from daily history, or predict how a
meal will affect it.`,
	}

	cmd.AddCommand(newAgniAnalyzeCommand())
	cmd.AddCommand(newAgniTrendCommand())
	cmd.AddCommand(newAgniMealCommand())

	return cmd
}

func newAgniAnalyzeCommand() *cobra.Command {
	var (
		interactive bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [symptoms.yaml]",
		Short: "Classify agni from symptoms",
		Long: `Classify agni as sama, vishama, tikshna or manda from symptoms of
appetite, digestion, bowel movement and energy level.

Symptoms are read from a YAML file, or asked for with --interactive.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patient agni.PatientData
			switch {
			case interactive:
				p, err := wizard.RunAgniWizard(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				patient = *p
			case len(args) == 1:
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("reading symptoms: %w", err)
				}
				if err := validation.Error(args[0], validation.ValidateSymptomsBytes(data)); err != nil {
					return err
				}
				if patient, err = intake.ParseSymptoms(data); err != nil {
					return fmt.Errorf("parsing %s: %w", args[0], err)
				}
			default:
				return errors.New("a symptoms file or --interactive is required")
			}

			e, _, err := newEngine()
			if err != nil {
				return err
			}
			res := e.AnalyzeAgni(cmd.Context(), patient)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			writeAgniResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Answer a symptom questionnaire")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func writeAgniResult(w io.Writer, res agni.Result) {
	fmt.Fprintf(w, "Agni: %s (%s)\n\n", res.State.Type, res.State.Strength)

	if len(res.State.Indicators) > 0 {
		t := &table{header: []string{"INDICATOR", "TYPE", "CONFIDENCE"}}
		for _, ind := range models.Indicators {
			s, ok := res.State.Indicators[ind]
			if !ok {
				continue
			}
			t.add(string(ind), string(s.Type), formatScore(s.Confidence))
		}
		t.write(w)
		fmt.Fprintln(w)
	}

	writeList(w, "Recommendations", res.Recommendations)
	fmt.Fprintf(w, "Diet:      %s\n", res.Strategies.Diet)
	fmt.Fprintf(w, "Lifestyle: %s\n", res.Strategies.Lifestyle)
	fmt.Fprintf(w, "Exercise:  %s\n", res.Strategies.Exercise)
	if len(res.Foods.Beneficial) > 0 {
		fmt.Fprintf(w, "\nFavour: %s\n", strings.Join(res.Foods.Beneficial, ", "))
	}
	if len(res.Foods.Avoid) > 0 {
		fmt.Fprintf(w, "Avoid:  %s\n", strings.Join(res.Foods.Avoid, ", "))
	}
}

func newAgniTrendCommand() *cobra.Command {
	var (
		daily  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "trend <history.yaml>",
		Short: "Forecast agni from daily history",
		Long: `Forecast agni for the next week from daily history.

At least seven days are needed for a forecast; shorter histories get a
neutral default. With --daily each recorded day is also assessed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}
			if err := validation.Error(args[0], validation.ValidateHistoryBytes(data)); err != nil {
				return err
			}
			history, err := intake.ParseHistory(data)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			e, _, err := newEngine()
			if err != nil {
				return err
			}
			trend := e.PredictAgniTrend(cmd.Context(), history)

			var days []agni.DailyAssessment
			if daily {
				days = make([]agni.DailyAssessment, 0, len(history))
				for _, m := range history {
					days = append(days, e.AssessDailyAgni(m))
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					Trend agni.Trend             `json:"trend"`
					Days  []agni.DailyAssessment `json:"daily,omitempty"`
				}{trend, days})
			}
			writeTrend(cmd.OutOrStdout(), trend, days)
			return nil
		},
	}

	cmd.Flags().BoolVar(&daily, "daily", false, "Also assess each recorded day")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func writeTrend(w io.Writer, trend agni.Trend, days []agni.DailyAssessment) {
	fmt.Fprintf(w, "Agni score: %s  Trend: %s  Confidence: %s  Source: %s\n",
		formatScore(trend.AgniScore), trend.Direction, formatScore(trend.Confidence), trend.Source)

	if len(days) > 0 {
		fmt.Fprintln(w)
		t := &table{header: []string{"RECORDED", "SCORE", "LEVEL", "STRENGTH"}}
		for i, d := range days {
			t.add(strconv.Itoa(i+1), formatScore(d.AgniScore), string(d.Level), string(d.Strength))
		}
		t.write(w)
	}

	if len(trend.Forecast) > 0 {
		fmt.Fprintln(w)
		t := &table{header: []string{"DAY", "SCORE", "LEVEL", "CONFIDENCE"}}
		for _, f := range trend.Forecast {
			t.add(strconv.Itoa(f.Day), formatScore(f.AgniScore), string(f.Level), formatScore(f.Confidence))
		}
		t.write(w)
	}

	fmt.Fprintln(w)
	writeList(w, "Recommendations", trend.Recommendations)
}

func newAgniMealCommand() *cobra.Command {
	var (
		current  float64
		quantity float64
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "meal <food[=grams]>...",
		Short: "Predict how a meal will change agni",
		Long: `Predict how a meal will change agni.

Each food may carry a quantity in grams, e.g. rice=200. Foods without one use
--quantity.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(current >= 0 && current <= 1) {
				return fmt.Errorf("--current must be between 0 and 1, got %v", current)
			}
			foods, err := parseFoodArgs(args, quantity)
			if err != nil {
				return err
			}

			e, _, err := newEngine()
			if err != nil {
				return err
			}
			impact, err := e.PredictMealImpact(foods, current)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), impact)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Impact: %s (%s)\n", formatScore(impact.ImpactScore), impact.ImpactLevel)
			fmt.Fprintf(w, "Predicted agni change: %+.2f\n", impact.AgniChange)
			if impact.TimingAdvice != "" {
				fmt.Fprintf(w, "Timing: %s\n", impact.TimingAdvice)
			}
			fmt.Fprintln(w)
			writeList(w, "Recommendations", impact.Recommendations)
			return nil
		},
	}

	cmd.Flags().Float64Var(&current, "current", models.NeutralScore, "Current agni level (0-1)")
	cmd.Flags().Float64Var(&quantity, "quantity", 100, "Grams for foods given without a quantity")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

// parseFoodArgs turns "name" and "name=grams" arguments into food items.
func parseFoodArgs(args []string, defaultGrams float64) ([]models.FoodItem, error) {
	foods := make([]models.FoodItem, 0, len(args))
	for _, arg := range args {
		name, qty, found := strings.Cut(arg, "=")
		item := models.FoodItem{Name: strings.TrimSpace(name), Quantity: defaultGrams}
		if found {
			q, err := strconv.ParseFloat(strings.TrimSpace(qty), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid quantity in %q: %w", arg, err)
			}
			item.Quantity = q
		}
		if item.Name == "" {
			return nil, fmt.Errorf("missing food name in %q", arg)
		}
		foods = append(foods, item)
	}
	return foods, nil
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
