package analyzer

import "github.com/panbanda/mulemeter/pkg/models"

// Scorer computes the weighted migration complexity score for a project.
// Scoring is a pure function of the project's accumulated counts: identical
// inputs always produce the identical rounded score.
type Scorer struct {
	weights models.ComplexityWeights
}

// NewScorer creates a scorer with the given weight table.
func NewScorer(weights models.ComplexityWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score applies the weighted formula over a project's counts and returns the
// score rounded to two decimal places.
func (s *Scorer) Score(p *models.Project) float64 {
	var score float64

	for connector, count := range p.Connectors.UsageCount {
		score += s.weights.ConnectorWeight(connector) * float64(count)
	}

	score += float64(p.Flows.TotalFlows) * s.weights.Flow
	score += float64(p.Flows.TotalSubflows) * s.weights.Subflow
	score += float64(p.Connectors.TotalComponents) * s.weights.Component

	score += float64(p.CustomCode.JavaFiles) * s.weights.JavaFile
	score += float64(p.CustomCode.TotalLines) * s.weights.CustomCodeLine

	score += float64(p.DataWeave.DWLFiles) * s.weights.DWLFile
	score += float64(p.DataWeave.ComplexTransformations) * s.weights.ComplexTransformation

	score += float64(len(p.Indicators.LargeFiles)) * s.weights.LargeFile

	return models.Round2(score)
}
