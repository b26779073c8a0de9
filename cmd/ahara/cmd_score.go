package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaidya/ahara/internal/cache"
	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/engine"
	"github.com/vaidya/ahara/internal/intake"
	"github.com/vaidya/ahara/internal/models"
	"github.com/vaidya/ahara/internal/projectconfig"
	"github.com/vaidya/ahara/internal/reporting"
	"github.com/vaidya/ahara/internal/spinner"
	"github.com/vaidya/ahara/internal/validation"
)

var scoreFormats = []string{"table", "summary", "json", "markdown", "html", "junit"}

type scoreOptions struct {
	format   string
	minScore float64
	noCache  bool
	output   string
}

func newScoreCommand() *cobra.Command {
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score <chart.yaml>",
		Short: "Score a diet chart for Ayurvedic compliance",
		Long: `Score a diet chart for Ayurvedic compliance.

The chart is validated against its schema, each meal is scored for food
compatibility, taste balance, thermal qualities, nutrition and agni impact,
and the meal scores are combined into an overall compliance score.

Patient demographics missing from the chart come from .ahara.yaml. When the
cache is enabled and no live model scorers are configured, results are stored
on disk and reused for unchanged input.

With --min-score the command exits with status 1 when the overall score is
below the threshold.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return scoreE(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "table",
		"Output format: "+strings.Join(scoreFormats, ", "))
	cmd.Flags().Float64Var(&opts.minScore, "min-score", 0,
		"Fail when overall compliance is below this value (0-1); defaults to scoring.min_score")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Ignore and do not update the result cache")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

func scoreE(cmd *cobra.Command, path string, opts *scoreOptions) error {
	if !slices.Contains(scoreFormats, opts.format) {
		return fmt.Errorf("unknown format %q (want one of %s)", opts.format, strings.Join(scoreFormats, ", "))
	}

	pc, err := loadProject()
	if err != nil {
		return err
	}

	minScore, thresholdSet := opts.minScore, cmd.Flags().Changed("min-score")
	if !thresholdSet && pc.Scoring.MinScore != nil {
		minScore, thresholdSet = *pc.Scoring.MinScore, true
	}
	if minScore < 0 || minScore > 1 {
		return fmt.Errorf("--min-score must be between 0 and 1, got %v", minScore)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading chart: %w", err)
	}
	if err := validation.Error(path, validation.ValidateChartBytes(data)); err != nil {
		return err
	}
	chart, err := intake.ParseChart(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	res, err := scoreChart(cmd, chart, data, pc, opts.noCache)
	if err != nil {
		return err
	}

	name := chart.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := renderScore(cmd.OutOrStdout(), name, res, opts, minScore); err != nil {
		return err
	}

	if thresholdSet && res.Compliance.OverallScore < minScore {
		return &ThresholdError{Score: res.Compliance.OverallScore, MinScore: minScore}
	}
	return nil
}

// scoreChart returns a cached result when one exists for the same chart
// bytes and configuration, otherwise scores the chart with a fresh engine.
func scoreChart(cmd *cobra.Command, chart *intake.Chart, data []byte, pc *projectconfig.ProjectConfig, noCache bool) (*compliance.ChartResult, error) {
	var (
		c   *cache.Cache
		key string
	)
	if !noCache && cache.Cacheable(pc) {
		k, err := cache.Key(data, pc)
		if err != nil {
			return nil, fmt.Errorf("computing cache key: %w", err)
		}
		c, key = cache.New(pc.Cache.Dir), k
		if res, ok := c.Get(key); ok {
			slog.Debug("cache hit", "key", key)
			return res, nil
		}
		slog.Debug("cache miss", "key", key)
	}

	e, err := engine.FromProject(pc, slog.Default())
	if err != nil {
		return nil, err
	}
	patient, err := chart.PatientFor(engine.DefaultProfile(pc))
	if err != nil {
		return nil, err
	}
	stop := spinner.Start(cmd.ErrOrStderr(), fmt.Sprintf("Scoring %d meal(s)", len(chart.Meals)))
	res, err := e.ScoreChart(cmd.Context(), chart.Meals, patient)
	stop()
	if err != nil {
		return nil, err
	}

	if c != nil {
		if err := c.Put(key, &res); err != nil {
			slog.Warn("failed to cache result", "error", err)
		}
	}
	return &res, nil
}

func renderScore(w io.Writer, name string, res *compliance.ChartResult, opts *scoreOptions, minScore float64) error {
	switch opts.format {
	case "json":
		if opts.output == "" {
			return writeJSON(w, res)
		}
		var sb strings.Builder
		if err := writeJSON(&sb, res); err != nil {
			return err
		}
		return writeOutput(w, opts.output, sb.String())
	case "summary":
		return writeOutput(w, opts.output, reporting.FormatSummaryReport(name, res)+"\n")
	case "markdown":
		return writeOutput(w, opts.output, reporting.FormatMarkdown(name, res))
	case "html":
		page, err := reporting.FormatHTML(name, res)
		if err != nil {
			return err
		}
		return writeOutput(w, opts.output, page)
	case "junit":
		if opts.output != "" {
			return reporting.WriteJUnitXML(name, res, minScore, opts.output)
		}
		data, err := reporting.MarshalJUnit(name, res, minScore)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		var sb strings.Builder
		writeScoreTable(&sb, name, res)
		return writeOutput(w, opts.output, sb.String())
	}
}

func writeScoreTable(w io.Writer, name string, res *compliance.ChartResult) {
	fmt.Fprintf(w, "Chart: %s\n", name)
	fmt.Fprintf(w, "Overall compliance: %s (%s)\n", formatScore(res.Compliance.OverallScore),
		reporting.InterpretScore(res.Compliance.OverallScore))
	fmt.Fprintf(w, "Ayurvedic adherence: %s\n\n", formatScore(res.Adherence))

	header := []string{"MEAL", "FOODS", "SCORE"}
	for _, s := range models.SubScores {
		header = append(header, strings.ToUpper(string(s)))
	}
	t := &table{header: header}
	for _, m := range res.Meals {
		foods := make([]string, 0, len(m.Thermal.Foods))
		for _, f := range m.Thermal.Foods {
			foods = append(foods, f.Food)
		}
		row := []string{
			fmt.Sprintf("#%d %s", m.Index+1, m.Type),
			truncateName(strings.Join(foods, ", "), 32),
			formatScore(m.Compliance.OverallScore),
		}
		for _, s := range models.SubScores {
			row = append(row, formatScore(m.Compliance.SubScores[s]))
		}
		t.add(row...)
	}
	t.write(w)

	if len(res.Compliance.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, r := range res.Compliance.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
}
