package analyzer

import (
	"testing"

	"github.com/panbanda/mulemeter/pkg/models"
	"github.com/stretchr/testify/assert"
)

func aggregateFixture() []*models.Project {
	mule4 := &models.Project{Name: "orders-api", MuleVersion: "4.4.0"}
	mule4.Flows.TotalFlows = 12
	mule4.Flows.TotalSubflows = 4
	mule4.Connectors.TotalComponents = 300
	mule4.Connectors.UsageCount = map[string]int{"http": 10, "db": 5}
	mule4.Connectors.ComponentTypes = map[string]int{"logger": 40, "http:listener": 10}
	mule4.Connectors.ComplexityScore = 120.5
	mule4.CustomCode.JavaFiles = 2
	mule4.Testing.MUnitFiles = 2
	mule4.Testing.MUnitCases = 9
	mule4.Indicators.LargeFiles = []models.LargeFile{{Filename: "orders.xml", Lines: 1400}}

	mule3 := &models.Project{Name: "legacy-api", MuleVersion: "3.9.0", IsLegacy: true}
	mule3.Flows.TotalFlows = 6
	mule3.Connectors.UsageCount = map[string]int{"http": 3, "sap": 1}
	mule3.Connectors.ComponentTypes = map[string]int{"logger": 12}
	mule3.Connectors.ComplexityScore = 44.25

	unknown := &models.Project{Name: "mystery", MuleVersion: UnknownVersion}
	unknown.Connectors.ComplexityScore = 1.0

	return []*models.Project{mule4, mule3, unknown}
}

func TestAggregate(t *testing.T) {
	s := Aggregate(aggregateFixture())

	assert.Equal(t, 3, s.TotalProjects)
	assert.Equal(t, 1, s.Mule4Projects)
	assert.Equal(t, 1, s.Mule3Projects)
	assert.Equal(t, 1, s.UnknownVersionProjects)

	assert.Equal(t, 18, s.TotalFlows)
	assert.Equal(t, 4, s.TotalSubflows)
	assert.Equal(t, 300, s.TotalComponents)
	assert.Equal(t, 2, s.TotalJavaFiles)
	// Suite files roll up, individual test cases do not.
	assert.Equal(t, 2, s.TotalMUnitTests)
	assert.Equal(t, 1, s.TotalLargeFiles)

	assert.Equal(t, 13, s.ConnectorUsage["http"])
	assert.Equal(t, 5, s.ConnectorUsage["db"])
	assert.Equal(t, 1, s.ConnectorUsage["sap"])
	assert.Equal(t, 52, s.ComponentTypes["logger"])

	assert.Equal(t, 165.75, s.TotalComplexity)
	assert.Equal(t, 120.5, s.Scores.Max)
	assert.Equal(t, 55.25, s.Scores.Mean)
	assert.Equal(t, 44.25, s.Scores.Median)
}

func TestAggregateOrderIndependent(t *testing.T) {
	projects := aggregateFixture()
	forward := Aggregate(projects)

	reversed := []*models.Project{projects[2], projects[1], projects[0]}
	backward := Aggregate(reversed)

	assert.Equal(t, forward, backward)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)

	assert.Zero(t, s.TotalProjects)
	assert.Zero(t, s.TotalComplexity)
	assert.Equal(t, models.ScoreStats{}, s.Scores)
	assert.NotNil(t, s.ConnectorUsage)
}

func TestScoreStatsSingle(t *testing.T) {
	st := scoreStats([]float64{42.5})

	assert.Equal(t, 42.5, st.Mean)
	assert.Equal(t, 42.5, st.Median)
	assert.Equal(t, 42.5, st.Max)
	assert.Zero(t, st.StdDev)
}

func TestScoreStatsSpread(t *testing.T) {
	st := scoreStats([]float64{10, 20, 30, 40})

	assert.Equal(t, 25.0, st.Mean)
	assert.Equal(t, 40.0, st.Max)
	assert.Greater(t, st.StdDev, 0.0)
}
