package reporting

import (
	"fmt"
	"strings"

	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/statistics"
)

// InterpretScore returns a plain-language label for a compliance score (0–1).
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretInterval explains how much the meal scores of a chart agree.
func InterpretInterval(ci statistics.ConfidenceInterval) string {
	width := ci.Upper - ci.Lower
	switch {
	case ci.NumBootstraps == 0:
		return "Not enough meals to estimate spread."
	case width > 0.3:
		return fmt.Sprintf("Meal scores vary widely (%.2f–%.2f). Some meals need much more attention than others.", ci.Lower, ci.Upper)
	case width > 0.1:
		return fmt.Sprintf("Meal scores vary moderately (%.2f–%.2f).", ci.Lower, ci.Upper)
	default:
		return fmt.Sprintf("Meal scores are consistent (%.2f–%.2f).", ci.Lower, ci.Upper)
	}
}

// FormatSummaryReport produces a plain-language report for a scored chart.
func FormatSummaryReport(name string, res *compliance.ChartResult) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("Chart:         %s\n", name))
	}
	c := res.Compliance
	b.WriteString(fmt.Sprintf("Overall Score: %.2f — %s\n", c.OverallScore, InterpretScore(c.OverallScore)))
	b.WriteString(fmt.Sprintf("Adherence:     %.2f\n", res.Adherence))
	b.WriteString(fmt.Sprintf("Spread:        %s\n", InterpretInterval(res.Interval)))

	if len(res.Meals) > 0 {
		b.WriteString("\nPer-Meal Interpretation:\n")
		for _, m := range res.Meals {
			icon := "✓"
			if m.Compliance.OverallScore < 0.5 {
				icon = "✗"
			}
			b.WriteString(fmt.Sprintf("  %s %s: %.2f — %s\n", icon, mealLabel(m), m.Compliance.OverallScore, InterpretScore(m.Compliance.OverallScore)))
			if n := len(m.Compatibility.Conflicts); n > 0 {
				b.WriteString(fmt.Sprintf("    %d food conflict(s)\n", n))
			}
		}
	}

	if len(c.ImprovementAreas) > 0 {
		b.WriteString("\nImprovement Areas:\n")
		for _, area := range c.ImprovementAreas {
			b.WriteString(fmt.Sprintf("  - %s\n", area))
		}
	}

	return b.String()
}

// mealLabel names a meal by position and type, e.g. "#2 lunch".
func mealLabel(m compliance.MealResult) string {
	return fmt.Sprintf("#%d %s", m.Index+1, m.Type)
}

// subScoreLabel capitalises a sub-score name for headings.
func subScoreLabel(s models.SubScore) string {
	name := string(s)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
