package models

// ConfigFile describes a single Mule configuration XML document after analysis.
type ConfigFile struct {
	Filename        string                    `json:"filename"`
	RelativePath    string                    `json:"relative_path"`
	SizeLines       int                       `json:"size_lines"`
	Flows           int                       `json:"flows"`
	Subflows        int                       `json:"subflows"`
	Components      int                       `json:"components"`
	TagsByNamespace map[string]map[string]int `json:"xml_tags_by_namespace"`
}

// ConfigurationSet holds all configuration files found in a project.
type ConfigurationSet struct {
	Count int          `json:"count"`
	Files []ConfigFile `json:"files"`
}

// FlowStats aggregates flow and sub-flow counts across a project.
type FlowStats struct {
	TotalFlows    int            `json:"total_flows"`
	TotalSubflows int            `json:"total_subflows"`
	FlowsPerFile  map[string]int `json:"flows_per_file"`
}

// ConnectorStats aggregates connector and component usage for a project.
//
// UniqueConnectors is the union of every connector declared via a namespace
// prefix in any configuration file, whether or not elements of that connector
// were attributed. UsageCount on the other hand only counts attributed
// elements. The asymmetry (a connector can be "unique" with zero counted
// usages) is deliberate: a declared dependency is a migration signal on its
// own, even when attribution undercounts it.
type ConnectorStats struct {
	UniqueConnectors []string           `json:"unique_connectors"`
	UsageCount       map[string]int     `json:"connector_usage_count"`
	ComponentTypes   map[string]int     `json:"component_types"`
	TotalComponents  int                `json:"total_components"`
	ComplexityScore  float64            `json:"complexity_score"`
}

// DataWeaveStats aggregates DataWeave usage for a project.
type DataWeaveStats struct {
	DWLFiles               int `json:"dwl_files_count"`
	InlineExpressions      int `json:"inline_dw_expressions_count"`
	ComplexTransformations int `json:"complex_transformations"`
	TotalLines             int `json:"total_dw_lines"`
}

// JavaClass describes one custom Java source file.
type JavaClass struct {
	Name    string `json:"class_name"`
	Path    string `json:"file_path"`
	Lines   int    `json:"lines"`
	Classes int    `json:"classes,omitempty"`
	Methods int    `json:"methods,omitempty"`
}

// CustomCode aggregates custom Java code found under src/main/java.
type CustomCode struct {
	JavaFiles   int         `json:"java_files_count"`
	JavaClasses []JavaClass `json:"java_classes"`
	TotalLines  int         `json:"total_custom_code_lines"`
}

// Testing aggregates MUnit and other test files for a project.
type Testing struct {
	MUnitFiles     int `json:"munit_test_files"`
	MUnitCases     int `json:"munit_test_cases"`
	OtherTestFiles int `json:"other_test_files"`
}

// ResourceFile describes a shared configuration resource.
type ResourceFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Path     string `json:"path"`
}

// SharedResources describes domain/shared assets of a project.
type SharedResources struct {
	DomainProject        bool           `json:"domain_project"`
	CommonConfigurations []ResourceFile `json:"common_configurations"`
}

// LargeFile records a configuration file exceeding the large-file threshold.
type LargeFile struct {
	Filename string `json:"filename"`
	Lines    int    `json:"lines"`
}

// ComplexityIndicators collects red flags that weigh into the score.
type ComplexityIndicators struct {
	LargeFiles []LargeFile `json:"large_files"`
}

// Project is the complete analysis result for one discovered Mule project.
// It is built once during analysis and not mutated afterward.
type Project struct {
	Name        string `json:"project_name"`
	DisplayName string `json:"project_display_name"`
	Source      string `json:"project_source"`
	Path        string `json:"project_path"`
	Depth       int    `json:"discovery_depth"`
	Repository  string `json:"repository,omitempty"`

	MuleVersion string `json:"mule_version"`
	IsLegacy    bool   `json:"is_legacy"`

	ConfigFiles     ConfigurationSet     `json:"configuration_files"`
	Flows           FlowStats            `json:"flows_and_subflows"`
	Connectors      ConnectorStats       `json:"connectors_and_components"`
	DataWeave       DataWeaveStats       `json:"dataweave_analysis"`
	CustomCode      CustomCode           `json:"custom_code"`
	Testing         Testing              `json:"testing"`
	SharedResources SharedResources      `json:"shared_resources"`
	Indicators      ComplexityIndicators `json:"complexity_indicators"`
}

// ComplexityScore returns the project's weighted complexity score.
func (p *Project) ComplexityScore() float64 {
	return p.Connectors.ComplexityScore
}
