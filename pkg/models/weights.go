package models

import "math"

// ComplexityWeights defines the weight applied to each metric when computing
// a project's migration complexity score. The connector table maps connector
// names to per-usage weights; connectors absent from the table fall back to
// ConnectorDefault.
type ComplexityWeights struct {
	Connector        map[string]float64 `json:"connector" toml:"connector" koanf:"connector"`
	ConnectorDefault float64            `json:"connector_default" toml:"connector_default" koanf:"connector_default"`

	Flow                  float64 `json:"flow" toml:"flow" koanf:"flow"`
	Subflow               float64 `json:"subflow" toml:"subflow" koanf:"subflow"`
	Component             float64 `json:"component" toml:"component" koanf:"component"`
	JavaFile              float64 `json:"java_file" toml:"java_file" koanf:"java_file"`
	CustomCodeLine        float64 `json:"custom_code_line" toml:"custom_code_line" koanf:"custom_code_line"`
	DWLFile               float64 `json:"dwl_file" toml:"dwl_file" koanf:"dwl_file"`
	ComplexTransformation float64 `json:"complex_transformation" toml:"complex_transformation" koanf:"complex_transformation"`
	LargeFile             float64 `json:"large_file" toml:"large_file" koanf:"large_file"`
}

// DefaultComplexityWeights returns the standard weight table. Connector
// weights reflect relative migration effort: transport-style connectors are
// cheap, SaaS and custom-code integrations are expensive.
func DefaultComplexityWeights() ComplexityWeights {
	return ComplexityWeights{
		Connector: map[string]float64{
			"http":        1,
			"db":          2,
			"file":        1,
			"ftp":         2,
			"sftp":        2,
			"jms":         3,
			"vm":          1,
			"sap":         5,
			"salesforce":  4,
			"servicenow":  4,
			"aws-s3":      3,
			"aws-sqs":     3,
			"email":       2,
			"compression": 1,
			"crypto":      2,
			"validation":  1,
			"json":        1,
			"xml":         2,
			"apikit":      2,
			"oauth":       3,
			"spring":      2,
			"scripting":   3,
			"java":        4,
		},
		ConnectorDefault:      2,
		Flow:                  2,
		Subflow:               1,
		Component:             0.1,
		JavaFile:              5,
		CustomCodeLine:        0.01,
		DWLFile:               3,
		ComplexTransformation: 5,
		LargeFile:             10,
	}
}

// ConnectorWeight returns the weight for a connector, falling back to the
// default weight for connectors not in the table.
func (w ComplexityWeights) ConnectorWeight(name string) float64 {
	if weight, ok := w.Connector[name]; ok {
		return weight
	}
	return w.ConnectorDefault
}

// Round2 rounds a score to two decimal places. Scores are rounded exactly
// once, when the final sum is computed, so identical inputs always produce
// the identical value.
func Round2(score float64) float64 {
	return math.Round(score*100) / 100
}

// RiskLevel buckets a complexity score for human-facing summaries. The bands
// are advisory only and carry no weight in aggregation.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskThresholds defines the score boundaries for risk banding.
type RiskThresholds struct {
	High   float64 `json:"high" toml:"high" koanf:"high"`
	Medium float64 `json:"medium" toml:"medium" koanf:"medium"`
}

// DefaultRiskThresholds returns the standard banding boundaries.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{High: 1000, Medium: 500}
}

// Level returns the risk band for a score.
func (t RiskThresholds) Level(score float64) RiskLevel {
	switch {
	case score > t.High:
		return RiskHigh
	case score > t.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}
