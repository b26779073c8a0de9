package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/vaidya/ahara/internal/compliance"
	"github.com/vaidya/ahara/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one scored chart.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one meal.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a meal scoring below the threshold.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents an unexpected error during scoring.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a test as skipped.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a scored chart to JUnit XML. Every meal is a test
// case that fails when its score is below minScore.
func ConvertToJUnit(name string, res *compliance.ChartResult, minScore float64) *JUnitTestSuites {
	if name == "" {
		name = "diet-chart"
	}
	suite := JUnitTestSuite{
		Name:  name,
		Tests: len(res.Meals),
		Properties: []JUnitProperty{
			{Name: "overall_score", Value: fmt.Sprintf("%.4f", res.Compliance.OverallScore)},
			{Name: "adherence", Value: fmt.Sprintf("%.4f", res.Adherence)},
			{Name: "min_score", Value: fmt.Sprintf("%.4f", minScore)},
		},
	}
	for _, k := range models.SubScores {
		suite.Properties = append(suite.Properties, JUnitProperty{
			Name:  string(k),
			Value: fmt.Sprintf("%.4f", res.Compliance.SubScores[k]),
		})
	}

	for _, m := range res.Meals {
		tc := JUnitTestCase{Name: mealLabel(m), Classname: name}
		if m.Compliance.OverallScore < minScore {
			tc.Failure = buildFailure(m, minScore)
			suite.Failures++
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func buildFailure(m compliance.MealResult, minScore float64) *JUnitFailure {
	var body strings.Builder
	for _, k := range models.SubScores {
		fmt.Fprintf(&body, "%s=%.2f\n", k, m.Compliance.SubScores[k])
	}
	for _, r := range m.Compliance.Recommendations {
		fmt.Fprintf(&body, "- %s\n", r)
	}
	return &JUnitFailure{
		Message: fmt.Sprintf("%s: score=%.2f below %.2f", mealLabel(m), m.Compliance.OverallScore, minScore),
		Type:    "ComplianceFailure",
		Body:    body.String(),
	}
}

// MarshalJUnit renders the JUnit document with the XML header.
func MarshalJUnit(name string, res *compliance.ChartResult, minScore float64) ([]byte, error) {
	data, err := xml.MarshalIndent(ConvertToJUnit(name, res, minScore), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(name string, res *compliance.ChartResult, minScore float64, path string) error {
	data, err := MarshalJUnit(name, res, minScore)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
