package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/catalog"
	"github.com/vaidya/ahara/internal/models"
)

type lookupResult struct {
	Properties  models.FoodProperties   `json:"properties"`
	Description string                  `json:"description"`
	Categories  []catalog.Category      `json:"categories"`
	Nutrients   *models.NutrientProfile `json:"nutrients_per_100g,omitempty"`
}

func newLookupCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <food>",
		Short: "Show the Ayurvedic properties of a food",
		Long: `Show the Ayurvedic properties of a food: tastes (rasa), thermal quality
(guna and virya), incompatibility categories and nutrients per 100 g.

Foods missing from the catalog are reported with neutral defaults.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := newEngine()
			if err != nil {
				return err
			}

			name := args[0]
			res := lookupResult{
				Properties: e.LookupFoodProperties(name),
				Categories: catalog.Categories(name),
			}
			analysis, err := e.AnalyzeMealGuna([]models.FoodItem{{Name: name, Quantity: 100}})
			if err != nil {
				return err
			}
			if len(analysis.Foods) > 0 {
				res.Description = analysis.Foods[0].Description
			}
			if catalog.HasNutrients(name) {
				n, err := e.CalculateMealNutrition([]models.FoodItem{{Name: name, Quantity: 100}})
				if err != nil {
					return err
				}
				res.Nutrients = &n
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			writeLookup(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func writeLookup(w io.Writer, res lookupResult) {
	p := res.Properties
	fmt.Fprintf(w, "Food:        %s\n", p.Name)
	if !p.Known {
		fmt.Fprintln(w, "             (not in catalog, neutral defaults shown)")
	}

	tastes := make([]string, 0, len(p.Tastes))
	for _, t := range p.Tastes {
		tastes = append(tastes, string(t))
	}
	fmt.Fprintf(w, "Tastes:      %s\n", strings.Join(tastes, ", "))
	fmt.Fprintf(w, "Guna:        %s\n", p.ThermalClass)
	fmt.Fprintf(w, "Virya:       %s (intensity %s)\n", p.ThermalEnergy, formatScore(p.Intensity))
	if res.Description != "" {
		fmt.Fprintf(w, "Effect:      %s\n", res.Description)
	}
	if len(res.Categories) > 0 {
		cats := make([]string, 0, len(res.Categories))
		for _, c := range res.Categories {
			cats = append(cats, string(c))
		}
		fmt.Fprintf(w, "Categories:  %s\n", strings.Join(cats, ", "))
	}

	if res.Nutrients == nil {
		return
	}
	fmt.Fprintln(w, "\nPer 100 g:")
	t := &table{header: []string{"NUTRIENT", "AMOUNT"}}
	for _, n := range models.Macronutrients {
		t.add(string(n), formatAmount(res.Nutrients.Get(n)))
	}
	t.write(w)
}
