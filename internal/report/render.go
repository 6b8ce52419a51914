// Package report renders assessment results for people: the formatter view
// used by the CLI and the shareable report bundle written to disk.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/panbanda/mulemeter/internal/output"
	"github.com/panbanda/mulemeter/pkg/models"
)

const topComponentTypes = 15

// View adapts an Assessment to the output formatter.
type View struct {
	Assessment *models.Assessment
	Risk       models.RiskThresholds
	Weights    models.ComplexityWeights
}

// NewView creates a renderable view over an assessment.
func NewView(a *models.Assessment, risk models.RiskThresholds, weights models.ComplexityWeights) *View {
	return &View{Assessment: a, Risk: risk, Weights: weights}
}

func (v *View) RenderData() any {
	return v.Assessment
}

func (v *View) RenderText(w io.Writer, colored bool) error {
	return v.buildReport(colored).RenderText(w, colored)
}

func (v *View) RenderMarkdown(w io.Writer) error {
	return v.buildReport(false).RenderMarkdown(w)
}

func (v *View) buildReport(colored bool) *output.Report {
	s := v.Assessment.Summary
	p := message.NewPrinter(language.English)

	summary := &output.Section{
		Title: "Summary",
		Content: p.Sprintf(
			"Analysis Date: %s\nTotal Projects: %d\nMule 4.x Projects: %d\nMule 3.x Projects (Legacy): %d\nUnknown Version Projects: %d",
			v.Assessment.Metadata.AnalysisDate.Format("2006-01-02 15:04:05"),
			s.TotalProjects, s.Mule4Projects, s.Mule3Projects, s.UnknownVersionProjects,
		),
	}

	stats := output.NewTable("Codebase Statistics",
		[]string{"Metric", "Value"},
		[][]string{
			{"Total Flows", p.Sprintf("%d", s.TotalFlows)},
			{"Total Subflows", p.Sprintf("%d", s.TotalSubflows)},
			{"Total Components", p.Sprintf("%d", s.TotalComponents)},
			{"Custom Java Files", p.Sprintf("%d", s.TotalJavaFiles)},
			{"DataWeave Files", p.Sprintf("%d", s.TotalDWLFiles)},
			{"MUnit Test Files", p.Sprintf("%d", s.TotalMUnitTests)},
			{"Large Configuration Files", p.Sprintf("%d", s.TotalLargeFiles)},
			{"Overall Complexity Score", fmt.Sprintf("%.2f", s.TotalComplexity)},
		},
		nil, nil,
	)

	connectors := v.connectorTable(colored)
	components := v.componentTable()
	projects := v.projectTable(colored)

	return &output.Report{
		Title:    "MuleSoft Migration Assessment",
		Sections: []output.Renderable{summary, stats, connectors, components, projects},
	}
}

func (v *View) connectorTable(colored bool) *output.Table {
	p := message.NewPrinter(language.English)

	rows := make([][]string, 0, len(v.Assessment.Summary.ConnectorUsage))
	for _, e := range v.Assessment.Summary.ConnectorUsage.Sorted() {
		risk := ConnectorRisk(v.Weights.ConnectorWeight(e.Name))
		label := strings.ToUpper(risk)
		if colored {
			label = output.RiskColor(risk, label)
		}
		rows = append(rows, []string{e.Name, p.Sprintf("%d", e.Count), label})
	}

	return output.NewTable("Connector Usage",
		[]string{"Connector", "Usages", "Migration Risk"},
		rows, nil, nil,
	)
}

func (v *View) componentTable() *output.Table {
	p := message.NewPrinter(language.English)

	entries := v.Assessment.Summary.ComponentTypes.Sorted()
	if len(entries) > topComponentTypes {
		entries = entries[:topComponentTypes]
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Name, p.Sprintf("%d", e.Count)})
	}

	return output.NewTable("Top Component Types",
		[]string{"Component Type", "Usages"},
		rows, nil, nil,
	)
}

func (v *View) projectTable(colored bool) *output.Table {
	projects := make([]*models.Project, len(v.Assessment.Projects))
	copy(projects, v.Assessment.Projects)
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ComplexityScore() > projects[j].ComplexityScore()
	})

	rows := make([][]string, 0, len(projects))
	for _, prj := range projects {
		risk := string(v.Risk.Level(prj.ComplexityScore()))
		label := strings.ToUpper(risk)
		if colored {
			label = output.RiskColor(risk, label)
		}
		rows = append(rows, []string{
			prj.DisplayName,
			prj.MuleVersion,
			fmt.Sprintf("%d", prj.Flows.TotalFlows),
			fmt.Sprintf("%d", prj.Connectors.TotalComponents),
			fmt.Sprintf("%d", prj.CustomCode.JavaFiles),
			fmt.Sprintf("%.1f", prj.ComplexityScore()),
			label,
		})
	}

	return output.NewTable("Project Breakdown",
		[]string{"Project", "Mule", "Flows", "Components", "Java", "Score", "Risk"},
		rows, nil, nil,
	)
}

// ConnectorRisk maps a connector's migration weight to a risk band.
func ConnectorRisk(weight float64) string {
	switch {
	case weight >= 4:
		return string(models.RiskHigh)
	case weight >= 3:
		return string(models.RiskMedium)
	default:
		return string(models.RiskLow)
	}
}
