package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/panbanda/mulemeter/pkg/models"
)

// Bundle file names. Stakeholders zip the directory and mail it around, so
// the names stay stable across releases.
const (
	consolidatedFile  = "mulesoft_analysis_analysis.json"
	comprehensiveFile = "mulesoft_analysis_comprehensive.txt"
	summaryFile       = "mulesoft_analysis_summary.txt"
)

// Writer produces the on-disk report bundle: a consolidated JSON report,
// optional per-project JSON files, a comprehensive overview and a short
// human-readable summary.
type Writer struct {
	Dir             string
	IndividualFiles bool
	Risk            models.RiskThresholds
	Weights         models.ComplexityWeights
}

type projectOverview struct {
	Name        string `json:"project_name"`
	DisplayName string `json:"project_display_name"`
	Source      string `json:"project_source"`
	Path        string `json:"project_path"`
	MuleVersion string `json:"mule_version"`
	IsLegacy    bool   `json:"is_legacy"`
}

type projectSummaryStats struct {
	Flows      models.FlowStats      `json:"flows_and_subflows"`
	Connectors models.ConnectorStats `json:"connectors_and_components"`
}

type projectDetail struct {
	Overview        projectOverview             `json:"project_overview"`
	ConfigFiles     models.ConfigurationSet     `json:"configuration_files"`
	DataWeave       models.DataWeaveStats       `json:"dataweave_analysis"`
	CustomCode      models.CustomCode           `json:"custom_code"`
	Testing         models.Testing              `json:"testing"`
	SharedResources models.SharedResources      `json:"shared_resources"`
	Indicators      models.ComplexityIndicators `json:"complexity_indicators"`
	SummaryStats    projectSummaryStats         `json:"summary_stats"`
}

type projectListEntry struct {
	Name            string  `json:"project_name"`
	DisplayName     string  `json:"project_display_name"`
	Source          string  `json:"project_source"`
	MuleVersion     string  `json:"mule_version"`
	IsLegacy        bool    `json:"is_legacy"`
	Flows           int     `json:"flows"`
	Components      int     `json:"components"`
	ComplexityScore float64 `json:"complexity_score"`
	JavaFiles       int     `json:"java_files"`
	MUnitTests      int     `json:"munit_tests"`
}

// WriteBundle writes the full report bundle for an assessment.
func (w *Writer) WriteBundle(a *models.Assessment) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	if err := w.writeConsolidated(a); err != nil {
		return err
	}

	if w.IndividualFiles {
		for _, p := range a.Projects {
			if err := w.writeProjectFile(a.Metadata, p); err != nil {
				return err
			}
		}
	}

	if err := w.writeComprehensive(a); err != nil {
		return err
	}
	return w.writeSummary(a)
}

func (w *Writer) writeConsolidated(a *models.Assessment) error {
	var doc any
	if w.IndividualFiles {
		list := make([]projectListEntry, 0, len(a.Projects))
		for _, p := range a.Projects {
			list = append(list, projectListEntry{
				Name:            p.Name,
				DisplayName:     p.DisplayName,
				Source:          p.Source,
				MuleVersion:     p.MuleVersion,
				IsLegacy:        p.IsLegacy,
				Flows:           p.Flows.TotalFlows,
				Components:      p.Connectors.TotalComponents,
				ComplexityScore: p.ComplexityScore(),
				JavaFiles:       p.CustomCode.JavaFiles,
				MUnitTests:      p.Testing.MUnitFiles,
			})
		}
		doc = struct {
			Metadata models.Metadata    `json:"metadata"`
			Summary  models.Summary     `json:"summary"`
			Projects []projectListEntry `json:"project_list"`
		}{a.Metadata, a.Summary, list}
	} else {
		details := make([]projectDetail, 0, len(a.Projects))
		for _, p := range a.Projects {
			details = append(details, detailFor(p))
		}
		doc = struct {
			Metadata models.Metadata `json:"metadata"`
			Summary  models.Summary  `json:"summary"`
			Projects []projectDetail `json:"projects"`
		}{a.Metadata, a.Summary, details}
	}

	return w.writeJSON(filepath.Join(w.Dir, consolidatedFile), doc)
}

func (w *Writer) writeProjectFile(meta models.Metadata, p *models.Project) error {
	doc := struct {
		Metadata models.Metadata `json:"metadata"`
		projectDetail
	}{meta, detailFor(p)}

	name := fmt.Sprintf("%s_analysis.json", p.Name)
	return w.writeJSON(filepath.Join(w.Dir, name), doc)
}

func detailFor(p *models.Project) projectDetail {
	return projectDetail{
		Overview: projectOverview{
			Name:        p.Name,
			DisplayName: p.DisplayName,
			Source:      p.Source,
			Path:        p.Path,
			MuleVersion: p.MuleVersion,
			IsLegacy:    p.IsLegacy,
		},
		ConfigFiles:     p.ConfigFiles,
		DataWeave:       p.DataWeave,
		CustomCode:      p.CustomCode,
		Testing:         p.Testing,
		SharedResources: p.SharedResources,
		Indicators:      p.Indicators,
		SummaryStats: projectSummaryStats{
			Flows:      p.Flows,
			Connectors: p.Connectors,
		},
	}
}

func (w *Writer) writeJSON(path string, doc any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

func (w *Writer) writeComprehensive(a *models.Assessment) error {
	f, err := os.Create(filepath.Join(w.Dir, comprehensiveFile))
	if err != nil {
		return err
	}
	defer f.Close()

	p := message.NewPrinter(language.English)
	s := a.Summary

	heading := func(title string) {
		fmt.Fprintf(f, "%s\n%s\n", title, strings.Repeat("-", len(title)))
	}

	fmt.Fprintln(f, "MULESOFT MIGRATION ASSESSMENT - COMPREHENSIVE")
	fmt.Fprintln(f, strings.Repeat("=", 45))
	fmt.Fprintln(f)

	heading("SUMMARY")
	fmt.Fprintf(f, "Analysis Date: %s\n", a.Metadata.AnalysisDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Analyzer Version: %s\n", a.Metadata.AnalyzerVersion)
	fmt.Fprintf(f, "Total Projects Analyzed: %d\n\n", s.TotalProjects)

	heading("MULE VERSION DISTRIBUTION")
	fmt.Fprintf(f, "Mule 4.x Projects: %d\n", s.Mule4Projects)
	fmt.Fprintf(f, "Mule 3.x Projects (Legacy): %d\n", s.Mule3Projects)
	fmt.Fprintf(f, "Unknown/Other Versions: %d\n\n", s.UnknownVersionProjects)
	if s.Mule3Projects > 0 {
		fmt.Fprintf(f, "CRITICAL: %d Mule 3.x projects require full migration!\n\n", s.Mule3Projects)
	}

	heading("CODEBASE STATISTICS")
	p.Fprintf(f, "Total Flows: %d\n", s.TotalFlows)
	p.Fprintf(f, "Total Subflows: %d\n", s.TotalSubflows)
	p.Fprintf(f, "Total Components: %d\n", s.TotalComponents)
	p.Fprintf(f, "Custom Java Files: %d\n", s.TotalJavaFiles)
	p.Fprintf(f, "DataWeave Files: %d\n", s.TotalDWLFiles)
	p.Fprintf(f, "MUnit Test Files: %d\n", s.TotalMUnitTests)
	if s.TotalProjects > 0 {
		fmt.Fprintf(f, "Average Complexity per Project: %.1f\n", s.TotalComplexity/float64(s.TotalProjects))
	}
	fmt.Fprintln(f)

	w.writeTagUsage(f, a)
	w.writeLargeFiles(f, a)
	w.writeCustomCode(f, a)
	w.writeDataWeave(f, a)
	w.writeProjectList(f, a)
	w.writeRecommendations(f, a)
	return nil
}

// writeTagUsage aggregates element tags across every configuration file,
// separating connector namespaces from core and EE internals.
func (w *Writer) writeTagUsage(f *os.File, a *models.Assessment) {
	p := message.NewPrinter(language.English)

	connectorTags := map[string]int{}
	excludedTotal := 0
	uniqueTags := map[string]bool{}

	for _, prj := range a.Projects {
		for _, cf := range prj.ConfigFiles.Files {
			for namespace, tags := range cf.TagsByNamespace {
				lower := strings.ToLower(namespace)
				for tag, count := range tags {
					uniqueTags[tag] = true
					if strings.Contains(lower, "core") || strings.Contains(lower, "ee") {
						excludedTotal += count
						continue
					}
					prefix := namespace
					if i := strings.Index(namespace, "("); i >= 0 {
						prefix = strings.TrimSpace(namespace[:i])
					}
					key := tag
					if prefix != "default" {
						key = prefix + ":" + tag
					}
					connectorTags[key] += count
				}
			}
		}
	}

	fmt.Fprintln(f, "XML TAGS USAGE ACROSS ALL PROJECTS")
	fmt.Fprintln(f, strings.Repeat("-", 34))
	fmt.Fprintln(f, "Used XML Tags (excluding core and mule:ee namespaces):")

	freq := models.Frequency(connectorTags)
	for i, e := range freq.Sorted() {
		p.Fprintf(f, "%2d. %-30s %6d usages\n", i+1, e.Name, e.Count)
	}
	p.Fprintf(f, "\nCore/EE namespace tags (excluded above): %d total usages\n", excludedTotal)
	fmt.Fprintf(f, "Total Unique XML Tags Found: %d\n\n", len(uniqueTags))
}

func (w *Writer) writeLargeFiles(f *os.File, a *models.Assessment) {
	type largeEntry struct {
		project  string
		filename string
		lines    int
	}
	var all []largeEntry
	for _, prj := range a.Projects {
		for _, lf := range prj.Indicators.LargeFiles {
			all = append(all, largeEntry{prj.Name, lf.Filename, lf.Lines})
		}
	}
	if len(all) == 0 {
		return
	}

	sort.Slice(all, func(i, j int) bool { return all[i].lines > all[j].lines })

	p := message.NewPrinter(language.English)
	fmt.Fprintln(f, "LARGE CONFIGURATION FILES")
	fmt.Fprintln(f, strings.Repeat("-", 25))
	fmt.Fprintf(f, "Total Large Configuration Files: %d\n", len(all))
	fmt.Fprintln(f, "Largest files:")
	for i, e := range all {
		if i >= 10 {
			break
		}
		p.Fprintf(f, "  %s/%s: %d lines\n", e.project, e.filename, e.lines)
	}
	fmt.Fprintln(f)
}

func (w *Writer) writeCustomCode(f *os.File, a *models.Assessment) {
	if a.Summary.TotalJavaFiles == 0 {
		return
	}

	totalLines := 0
	withJava := 0
	for _, prj := range a.Projects {
		totalLines += prj.CustomCode.TotalLines
		if prj.CustomCode.JavaFiles > 0 {
			withJava++
		}
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintln(f, "CUSTOM CODE ANALYSIS")
	fmt.Fprintln(f, strings.Repeat("-", 20))
	fmt.Fprintf(f, "Projects with Custom Java Code: %d\n", withJava)
	p.Fprintf(f, "Total Java Files: %d\n", a.Summary.TotalJavaFiles)
	p.Fprintf(f, "Total Java Lines of Code: %d\n", totalLines)
	if withJava > 0 {
		fmt.Fprintf(f, "Average Java Lines per Project: %.0f\n", float64(totalLines)/float64(withJava))
	}
	fmt.Fprintln(f)
}

func (w *Writer) writeDataWeave(f *os.File, a *models.Assessment) {
	totalInline := 0
	totalComplex := 0
	totalLines := 0
	for _, prj := range a.Projects {
		totalInline += prj.DataWeave.InlineExpressions
		totalComplex += prj.DataWeave.ComplexTransformations
		totalLines += prj.DataWeave.TotalLines
	}
	if a.Summary.TotalDWLFiles == 0 && totalInline == 0 {
		return
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintln(f, "DATAWEAVE ANALYSIS")
	fmt.Fprintln(f, strings.Repeat("-", 18))
	p.Fprintf(f, "DataWeave (.dwl) Files: %d\n", a.Summary.TotalDWLFiles)
	p.Fprintf(f, "Inline DataWeave Expressions: %d\n", totalInline)
	p.Fprintf(f, "Complex Transformations: %d\n", totalComplex)
	p.Fprintf(f, "Total DataWeave Lines of Code: %d\n\n", totalLines)
}

func (w *Writer) writeProjectList(f *os.File, a *models.Assessment) {
	projects := make([]*models.Project, len(a.Projects))
	copy(projects, a.Projects)
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ComplexityScore() > projects[j].ComplexityScore()
	})

	fmt.Fprintln(f, "PROJECT BREAKDOWN")
	fmt.Fprintln(f, strings.Repeat("-", 17))
	for _, prj := range projects {
		risk := strings.ToUpper(string(w.Risk.Level(prj.ComplexityScore())))
		fmt.Fprintf(f, "- %s\n", prj.Name)
		if prj.Source != "" && prj.Source != "local" {
			fmt.Fprintf(f, "   Source: %s\n", prj.Source)
		}
		fmt.Fprintf(f, "   Path: %s\n", prj.DisplayName)
		fmt.Fprintf(f, "   Mule: %-8s Risk: %-6s Complexity: %7.0f\n", prj.MuleVersion, risk, prj.ComplexityScore())
		fmt.Fprintf(f, "   Flows: %-4d Components: %-6d Java Files: %d\n\n",
			prj.Flows.TotalFlows, prj.Connectors.TotalComponents, prj.CustomCode.JavaFiles)
	}
}

func (w *Writer) writeRecommendations(f *os.File, a *models.Assessment) {
	fmt.Fprintln(f, "RECOMMENDATIONS")
	fmt.Fprintln(f, strings.Repeat("-", 15))

	if a.Summary.Mule3Projects > 0 {
		fmt.Fprintln(f, "CRITICAL PRIORITY:")
		fmt.Fprintf(f, "- %d Mule 3.x projects require complete rewrite (end-of-life)\n\n", a.Summary.Mule3Projects)
	}

	highRisk := 0
	for _, prj := range a.Projects {
		if w.Risk.Level(prj.ComplexityScore()) == models.RiskHigh {
			highRisk++
		}
	}
	if highRisk > 0 {
		fmt.Fprintln(f, "HIGH PRIORITY:")
		fmt.Fprintf(f, "- %d projects have high complexity (>%.0f)\n", highRisk, w.Risk.High)
		fmt.Fprintln(f, "- Consider phased migration approach for these projects")
		fmt.Fprintln(f)
	}

	if a.Summary.TotalJavaFiles > 0 {
		fmt.Fprintln(f, "MEDIUM PRIORITY:")
		fmt.Fprintf(f, "- %d Java files need review and potential rewriting\n", a.Summary.TotalJavaFiles)
		fmt.Fprintln(f, "- Assess if custom logic can be replaced with standard connectors")
		fmt.Fprintln(f)
	}

	if a.Summary.TotalLargeFiles > 0 {
		fmt.Fprintln(f, "OPTIMIZATION OPPORTUNITIES:")
		fmt.Fprintf(f, "- %d large configuration files may benefit from refactoring\n", a.Summary.TotalLargeFiles)
		fmt.Fprintln(f, "- Consider breaking monolithic flows into smaller, manageable pieces")
	}
}

func (w *Writer) writeSummary(a *models.Assessment) error {
	f, err := os.Create(filepath.Join(w.Dir, summaryFile))
	if err != nil {
		return err
	}
	defer f.Close()

	s := a.Summary

	fmt.Fprintln(f, "MULESOFT MIGRATION ASSESSMENT - SUMMARY")
	fmt.Fprintln(f, strings.Repeat("=", 39))
	fmt.Fprintln(f)

	fmt.Fprintf(f, "Analysis Date: %s\n", a.Metadata.AnalysisDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Total Projects Analyzed: %d\n", s.TotalProjects)
	fmt.Fprintf(f, "Mule 4.x Projects: %d\n", s.Mule4Projects)
	fmt.Fprintf(f, "Mule 3.x Projects (Legacy): %d\n", s.Mule3Projects)
	fmt.Fprintf(f, "Unknown Version Projects: %d\n\n", s.UnknownVersionProjects)
	if s.Mule3Projects > 0 {
		fmt.Fprintln(f, "WARNING: Mule 3.x projects found! These require full migration as Mule 3 reached end-of-life in 2021.")
		fmt.Fprintln(f)
	}

	fmt.Fprintln(f, "CONNECTOR USAGE SUMMARY")
	fmt.Fprintln(f, strings.Repeat("-", 23))
	for _, e := range s.ConnectorUsage.Sorted() {
		risk := strings.ToUpper(ConnectorRisk(w.Weights.ConnectorWeight(e.Name)))
		fmt.Fprintf(f, "%s: %d usages (Migration Risk: %s)\n", e.Name, e.Count, risk)
	}
	fmt.Fprintln(f)

	fmt.Fprintln(f, "TOP COMPONENT TYPES (by usage)")
	fmt.Fprintln(f, strings.Repeat("-", 29))
	top := s.ComponentTypes.Sorted()
	if len(top) > topComponentTypes {
		top = top[:topComponentTypes]
	}
	for _, e := range top {
		fmt.Fprintf(f, "%s: %d usages\n", e.Name, e.Count)
	}
	fmt.Fprintln(f)

	fmt.Fprintln(f, "PROJECT BREAKDOWN")
	fmt.Fprintln(f, strings.Repeat("-", 17))
	for _, prj := range a.Projects {
		fmt.Fprintf(f, "\nProject: %s\n", prj.DisplayName)
		if prj.Source != "" && prj.Source != "local" {
			fmt.Fprintf(f, "  Source: %s\n", prj.Source)
		}
		fmt.Fprintf(f, "  Mule Version: %s\n", prj.MuleVersion)
		fmt.Fprintf(f, "  Flows: %d\n", prj.Flows.TotalFlows)
		fmt.Fprintf(f, "  Components: %d\n", prj.Connectors.TotalComponents)
		fmt.Fprintf(f, "  Complexity Score: %.1f\n", prj.ComplexityScore())
		fmt.Fprintf(f, "  Custom Code: %d Java files\n", prj.CustomCode.JavaFiles)
		fmt.Fprintf(f, "  Tests: %d MUnit files\n", prj.Testing.MUnitFiles)
		if n := len(prj.Indicators.LargeFiles); n > 0 {
			fmt.Fprintf(f, "  Large files: %d\n", n)
		}
		if len(prj.Connectors.ComponentTypes) > 0 {
			top3 := models.Frequency(prj.Connectors.ComponentTypes).Sorted()
			if len(top3) > 3 {
				top3 = top3[:3]
			}
			parts := make([]string, 0, len(top3))
			for _, e := range top3 {
				parts = append(parts, fmt.Sprintf("%s(%d)", e.Name, e.Count))
			}
			fmt.Fprintf(f, "  Top components: %s\n", strings.Join(parts, ", "))
		}
	}
	return nil
}
