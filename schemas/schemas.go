// Package schemas embeds the JSON Schemas for ahara input files.
package schemas

import _ "embed"

// ChartSchemaJSON describes a diet chart: a patient and their meals.
//
//go:embed chart.schema.json
var ChartSchemaJSON string

// HistorySchemaJSON describes a series of daily digestive records.
//
//go:embed history.schema.json
var HistorySchemaJSON string

// SymptomsSchemaJSON describes the agni questionnaire answers.
//
//go:embed symptoms.schema.json
var SymptomsSchemaJSON string
