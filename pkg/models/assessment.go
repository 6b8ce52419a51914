package models

import (
	"sort"
	"time"
)

// Metadata stamps an assessment run.
type Metadata struct {
	AnalysisDate    time.Time `json:"analysis_date"`
	AnalyzerVersion string    `json:"analyzer_version"`
}

// ScoreStats holds distribution statistics over per-project complexity
// scores.
type ScoreStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Max    float64 `json:"max"`
}

// Summary holds cross-project totals and frequency tables. All fields are
// multiset merges of per-project results, so they are independent of the
// order in which projects were analyzed.
type Summary struct {
	TotalProjects          int `json:"total_projects"`
	Mule4Projects          int `json:"mule_4_projects"`
	Mule3Projects          int `json:"mule_3_projects"`
	UnknownVersionProjects int `json:"unknown_version_projects"`

	TotalFlows          int     `json:"total_flows"`
	TotalSubflows       int     `json:"total_subflows"`
	TotalComponents     int     `json:"total_components"`
	TotalJavaFiles      int     `json:"total_java_files"`
	TotalDWLFiles       int     `json:"total_dwl_files"`
	TotalMUnitTests     int     `json:"total_munit_tests"`
	TotalOtherTestFiles int     `json:"total_other_test_files"`
	TotalLargeFiles     int     `json:"total_large_files"`
	TotalComplexity     float64 `json:"total_complexity_score"`

	Scores ScoreStats `json:"score_stats"`

	ConnectorUsage Frequency `json:"connector_usage_summary"`
	ComponentTypes Frequency `json:"component_types_summary"`
}

// Assessment is the complete result of one run: metadata, cross-project
// summary and the per-project detail list.
type Assessment struct {
	Metadata Metadata   `json:"metadata"`
	Summary  Summary    `json:"summary"`
	Projects []*Project `json:"projects"`
}

// Frequency is a name-to-count table.
type Frequency map[string]int

// Add merges another frequency table into this one.
func (f Frequency) Add(other map[string]int) {
	for k, v := range other {
		f[k] += v
	}
}

// SortedEntry is one row of a frequency table ordered by count.
type SortedEntry struct {
	Name  string
	Count int
}

// Sorted returns the table entries ordered by descending count, with name as
// a tiebreak so output is stable across runs.
func (f Frequency) Sorted() []SortedEntry {
	entries := make([]SortedEntry, 0, len(f))
	for name, count := range f {
		entries = append(entries, SortedEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
