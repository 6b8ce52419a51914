package analyzer

import (
	"sort"
	"strings"

	"github.com/panbanda/mulemeter/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// Aggregate folds per-project results into the run-wide summary. The fold
// is a multiset merge, so project order never affects the totals.
func Aggregate(projects []*models.Project) models.Summary {
	s := models.Summary{
		TotalProjects:  len(projects),
		ConnectorUsage: models.Frequency{},
		ComponentTypes: models.Frequency{},
	}

	scores := make([]float64, 0, len(projects))
	for _, p := range projects {
		switch {
		case strings.HasPrefix(p.MuleVersion, "4."):
			s.Mule4Projects++
		case strings.HasPrefix(p.MuleVersion, "3."):
			s.Mule3Projects++
		default:
			s.UnknownVersionProjects++
		}

		s.TotalFlows += p.Flows.TotalFlows
		s.TotalSubflows += p.Flows.TotalSubflows
		s.TotalComponents += p.Connectors.TotalComponents
		s.TotalJavaFiles += p.CustomCode.JavaFiles
		s.TotalDWLFiles += p.DataWeave.DWLFiles
		s.TotalMUnitTests += p.Testing.MUnitFiles
		s.TotalOtherTestFiles += p.Testing.OtherTestFiles
		s.TotalLargeFiles += len(p.Indicators.LargeFiles)

		s.ConnectorUsage.Add(p.Connectors.UsageCount)
		s.ComponentTypes.Add(p.Connectors.ComponentTypes)

		scores = append(scores, p.Connectors.ComplexityScore)
		s.TotalComplexity += p.Connectors.ComplexityScore
	}

	s.TotalComplexity = models.Round2(s.TotalComplexity)
	s.Scores = scoreStats(scores)
	return s
}

func scoreStats(scores []float64) models.ScoreStats {
	if len(scores) == 0 {
		return models.ScoreStats{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	st := models.ScoreStats{
		Mean:   models.Round2(stat.Mean(sorted, nil)),
		Median: models.Round2(stat.Quantile(0.5, stat.Empirical, sorted, nil)),
		Max:    sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		st.StdDev = models.Round2(stat.StdDev(sorted, nil))
	}
	return st
}
