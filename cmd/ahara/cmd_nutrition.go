package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/engine"
	"github.com/vaidya/ahara/internal/intake"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/nutrition"
	"github.com/vaidya/ahara/internal/validation"
)

type nutritionReport struct {
	Patient      models.PatientProfile     `json:"patient"`
	Balance      nutrition.BalanceAnalysis `json:"balance"`
	Improvements nutrition.Improvements    `json:"improvements"`
}

func newNutritionCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "nutrition <chart.yaml>",
		Short: "Compare a chart's daily nutrition with the patient's requirement",
		Long: `Compare a chart's daily nutrition with the patient's requirement.

All meals in the chart are totalled and compared with the daily requirement
for the patient's age and gender. Shortfalls are listed with the three most
pressing nutrients first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, pc, err := newEngine()
			if err != nil {
				return err
			}

			chart, data, err := intake.LoadChart(args[0])
			if err != nil {
				return err
			}
			if err := validation.Error(args[0], validation.ValidateChartBytes(data)); err != nil {
				return err
			}
			patient, err := chart.PatientFor(engine.DefaultProfile(pc))
			if err != nil {
				return err
			}

			balance, improvements, err := e.AnalyzeDietNutrition(chart.Meals, patient.Profile)
			if err != nil {
				return err
			}
			report := nutritionReport{Patient: patient.Profile, Balance: balance, Improvements: improvements}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			writeNutrition(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func writeNutrition(w io.Writer, r nutritionReport) {
	b := r.Balance
	fmt.Fprintf(w, "Patient: %d years, %s\n", r.Patient.Age, r.Patient.Gender)
	fmt.Fprintf(w, "Daily balance: %s (%s)\n\n", formatScore(b.Overall), b.Status)

	t := &table{header: []string{"NUTRIENT", "ACTUAL", "REQUIRED", "BALANCE"}}
	for _, n := range models.Macronutrients {
		t.add(string(n), formatAmount(b.Totals.Get(n)), formatAmount(b.Requirements.Get(n)), formatScore(b.Scores[n]))
	}
	t.write(w)

	if len(b.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range b.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
	if len(r.Improvements.Priority) > 0 {
		fmt.Fprintln(w, "\nPriority nutrients:")
		for _, n := range r.Improvements.Priority {
			imp := r.Improvements.Needed[n]
			fmt.Fprintf(w, "  - %s: %s%% short (try %s)\n", n, numbers.Sprintf("%.0f", imp.Percentage),
				strings.Join(imp.Suggestions, ", "))
		}
	}
}
