// Package validation checks chart, history and questionnaire files against
// the embedded JSON Schemas before they are decoded.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/vaidya/ahara/schemas"
)

// Kind identifies the schema an input file is validated against.
type Kind string

const (
	KindChart    Kind = "chart"
	KindHistory  Kind = "history"
	KindSymptoms Kind = "symptoms"
)

// ErrUnknownKind is returned when a document matches no known input shape.
var ErrUnknownKind = errors.New("cannot tell whether the file is a chart, history or symptoms file")

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

var compiled = map[Kind]*jsonschema.Schema{
	KindChart:    mustCompileSchema(schemas.ChartSchemaJSON, "chart.schema.json"),
	KindHistory:  mustCompileSchema(schemas.HistorySchemaJSON, "history.schema.json"),
	KindSymptoms: mustCompileSchema(schemas.SymptomsSchemaJSON, "symptoms.schema.json"),
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateFile reads a YAML or JSON file, detects its kind from its
// top-level keys and validates it. The returned strings are schema
// violations; err is reserved for I/O and undetectable kinds.
func ValidateFile(path string) (Kind, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", []string{fmt.Sprintf("YAML parse error: %v", err)}, nil
	}
	kind, err := DetectKind(doc)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return kind, validateAgainstSchema(compiled[kind], convertToJSONCompatible(doc)), nil
}

// DetectKind inspects the top-level keys of a decoded document.
func DetectKind(doc any) (Kind, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return "", ErrUnknownKind
	}
	switch {
	case has(m, "meals"):
		return KindChart, nil
	case has(m, "days"):
		return KindHistory, nil
	case has(m, "symptoms"), has(m, "dietary_habits"):
		return KindSymptoms, nil
	}
	return "", ErrUnknownKind
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

// ValidateBytes validates raw YAML or JSON bytes against the schema for kind.
func ValidateBytes(kind Kind, data []byte) []string {
	schema, ok := compiled[kind]
	if !ok {
		return []string{fmt.Sprintf("unknown kind %q", kind)}
	}
	return validateYAMLBytes(schema, data)
}

// ValidateChartBytes validates raw YAML bytes against the chart schema.
func ValidateChartBytes(data []byte) []string {
	return ValidateBytes(KindChart, data)
}

// ValidateHistoryBytes validates raw YAML bytes against the history schema.
func ValidateHistoryBytes(data []byte) []string {
	return ValidateBytes(KindHistory, data)
}

// ValidateSymptomsBytes validates raw YAML bytes against the questionnaire
// schema.
func ValidateSymptomsBytes(data []byte) []string {
	return ValidateBytes(KindSymptoms, data)
}

// Error joins schema violations into one error, or returns nil if there
// are none.
func Error(path string, violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return fmt.Errorf("%s is invalid:\n  %s", path, strings.Join(violations, "\n  "))
}

func validateYAMLBytes(schema *jsonschema.Schema, data []byte) []string {
	// Parse YAML into generic any; JSON is valid YAML.
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	return validateAgainstSchema(schema, convertToJSONCompatible(yamlDoc))
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible copies YAML-decoded maps and slices into plain
// map[string]any and []any. Scalars pass through unchanged.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
