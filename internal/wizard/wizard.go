// Package wizard runs the interactive agni questionnaire.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vaidya/ahara/internal/agni"
	"github.com/vaidya/ahara/internal/models"
)

// Choice is one answer to a question. Value is the symptom text recorded
// for it; an empty Value means the patient is not sure.
type Choice struct {
	Label string
	Value string
	Type  models.AgniType
}

// Question asks about one agni indicator.
type Question struct {
	Indicator models.Indicator
	Title     string
	Choices   []Choice
}

// notSure is offered last on every question.
var notSure = Choice{Label: "Not sure", Value: ""}

// Questions is the questionnaire in the order it is asked.
var Questions = []Question{
	{
		Indicator: models.IndicatorAppetite,
		Title:     "How is your appetite?",
		Choices: []Choice{
			{Label: "Unpredictable: strong some days, weak on others", Value: "irregular and unpredictable", Type: models.AgniVishama},
			{Label: "Excessive: always strong, burning when meals are late", Value: "excessive, always strong, burning sensation", Type: models.AgniTikshna},
			{Label: "Poor: weak, often no desire to eat", Value: "poor and weak, no desire", Type: models.AgniManda},
			{Label: "Regular and healthy", Value: "regular, moderate and healthy", Type: models.AgniSama},
		},
	},
	{
		Indicator: models.IndicatorDigestion,
		Title:     "How does your digestion feel after meals?",
		Choices: []Choice{
			{Label: "Unpredictable: sometimes good, sometimes bad", Value: "irregular and unpredictable", Type: models.AgniVishama},
			{Label: "Fast, with burning or acidity", Value: "fast, burning, excessive acid", Type: models.AgniTikshna},
			{Label: "Slow and heavy, never quite finished", Value: "slow, heavy and incomplete", Type: models.AgniManda},
			{Label: "Smooth and comfortable", Value: "smooth, complete and comfortable", Type: models.AgniSama},
		},
	},
	{
		Indicator: models.IndicatorBowelMovement,
		Title:     "How are your bowel movements?",
		Choices: []Choice{
			{Label: "Irregular, alternating constipation and diarrhea", Value: "irregular, constipation diarrhea alternating", Type: models.AgniVishama},
			{Label: "Frequent and loose", Value: "frequent, loose, burning", Type: models.AgniTikshna},
			{Label: "Infrequent and hard", Value: "infrequent, hard, incomplete", Type: models.AgniManda},
			{Label: "Regular and well formed", Value: "regular, well formed, complete", Type: models.AgniSama},
		},
	},
	{
		Indicator: models.IndicatorEnergyLevel,
		Title:     "How is your energy through the day?",
		Choices: []Choice{
			{Label: "Fluctuating and unpredictable", Value: "fluctuating, unpredictable, irregular", Type: models.AgniVishama},
			{Label: "High but restless", Value: "restless and hyperactive, high but burning", Type: models.AgniTikshna},
			{Label: "Low and sluggish", Value: "low, sluggish and heavy", Type: models.AgniManda},
			{Label: "Stable and sustained", Value: "stable, sustained and balanced", Type: models.AgniSama},
		},
	},
}

// Answers are the raw questionnaire responses.
type Answers struct {
	Symptoms map[models.Indicator]string
	Habits   string
}

// PatientData converts answers into agni analysis input. Unanswered
// indicators are left out.
func (a Answers) PatientData() agni.PatientData {
	pd := agni.PatientData{Symptoms: make(map[models.Indicator]string)}
	for ind, v := range a.Symptoms {
		if v = strings.TrimSpace(v); v != "" {
			pd.Symptoms[ind] = v
		}
	}
	if h := strings.TrimSpace(a.Habits); h != "" {
		pd.Habits = map[models.Indicator]string{models.IndicatorAppetite: h}
	}
	return pd
}

// RunAgniWizard runs an interactive huh form that asks about each agni
// indicator and returns the answers as analysis input.
func RunAgniWizard(in io.Reader, out io.Writer) (*agni.PatientData, error) {
	values := make([]string, len(Questions))
	var habits string

	fields := make([]huh.Field, 0, len(Questions)+1)
	for i, q := range Questions {
		opts := make([]huh.Option[string], 0, len(q.Choices)+1)
		for _, c := range append(q.Choices, notSure) {
			opts = append(opts, huh.NewOption(c.Label, c.Value))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title(q.Title).
			Options(opts...).
			Value(&values[i]))
	}
	fields = append(fields, huh.NewInput().
		Title("Eating habits").
		Description("Optional: when and how you usually eat").
		Placeholder("skip breakfast, late heavy dinners").
		Value(&habits))

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("questionnaire failed: %w", err)
	}

	answers := Answers{Symptoms: make(map[models.Indicator]string, len(Questions)), Habits: habits}
	for i, q := range Questions {
		answers.Symptoms[q.Indicator] = values[i]
	}
	pd := answers.PatientData()
	return &pd, nil
}
