package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/models"
)

// FormatMarkdown renders a scored chart as a Markdown report.
func FormatMarkdown(name string, res *compliance.ChartResult) string {
	var b strings.Builder

	title := "Diet Chart Compliance"
	if name != "" {
		title += ": " + name
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	c := res.Compliance
	fmt.Fprintf(&b, "**Overall score:** %.2f (%s)\n\n", c.OverallScore, InterpretScore(c.OverallScore))
	fmt.Fprintf(&b, "**Ayurvedic adherence:** %.2f\n\n", res.Adherence)
	if res.Interval.NumBootstraps > 0 {
		fmt.Fprintf(&b, "**%.0f%% interval:** %.2f – %.2f\n\n", res.Interval.ConfidenceLevel*100, res.Interval.Lower, res.Interval.Upper)
	}

	b.WriteString("## Sub-scores\n\n")
	b.WriteString("| Component | Score |\n|---|---:|\n")
	for _, k := range models.SubScores {
		fmt.Fprintf(&b, "| %s | %.2f |\n", subScoreLabel(k), c.SubScores[k])
	}

	if len(res.Meals) > 0 {
		b.WriteString("\n## Meals\n\n")
		b.WriteString("| Meal | Foods | Score | Compatibility | Taste | Thermal | Nutrient | Agni |\n")
		b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|\n")
		for _, m := range res.Meals {
			s := m.Compliance.SubScores
			fmt.Fprintf(&b, "| %s | %s | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				mealLabel(m), cell(strings.Join(mealFoods(m), ", ")), m.Compliance.OverallScore,
				s[models.SubScoreCompatibility], s[models.SubScoreTaste], s[models.SubScoreThermal],
				s[models.SubScoreNutrient], s[models.SubScoreAgni])
		}
	}

	writeList(&b, "Improvement areas", c.ImprovementAreas)
	writeList(&b, "Recommendations", c.Recommendations)
	return b.String()
}

// RenderHTML converts a Markdown report to a standalone HTML page.
func RenderHTML(title, markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// FormatHTML renders a scored chart as an HTML page.
func FormatHTML(name string, res *compliance.ChartResult) (string, error) {
	title := "Diet Chart Compliance"
	if name != "" {
		title += ": " + name
	}
	return RenderHTML(title, FormatMarkdown(name, res))
}

func mealFoods(m compliance.MealResult) []string {
	names := make([]string, 0, len(m.Thermal.Foods))
	for _, f := range m.Thermal.Foods {
		names = append(names, f.Food)
	}
	return names
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

// cell escapes pipes so text cannot break a table row.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
