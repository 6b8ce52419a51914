package analyzer

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/panbanda/mulemeter/internal/discovery"
	"github.com/panbanda/mulemeter/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMuleConfig = `<?xml version="1.0" encoding="UTF-8"?>
<mule xmlns="http://www.mulesoft.org/schema/mule/core"
      xmlns:http="http://www.mulesoft.org/schema/mule/http"
      xmlns:db="http://www.mulesoft.org/schema/mule/db">
  <flow name="orders-main">
    <http:listener config-ref="api" path="/orders"/>
    <db:select config-ref="database"/>
    <logger level="INFO" message="#[payload.id]"/>
  </flow>
  <sub-flow name="audit">
    <logger level="DEBUG"/>
  </sub-flow>
</mule>
`

const sampleMUnitSuite = `<?xml version="1.0" encoding="UTF-8"?>
<mule xmlns="http://www.mulesoft.org/schema/mule/core"
      xmlns:munit="http://www.mulesoft.org/schema/mule/munit">
  <munit:test name="orders-main-succeeds"/>
  <munit:test name="orders-main-handles-404"/>
</mule>
`

// writeOrdersProject lays out a realistic Mule project tree and returns the
// candidate pointing at it.
func writeOrdersProject(t *testing.T) discovery.Candidate {
	t.Helper()
	root := t.TempDir()

	writeProjectFile(t, root, "pom.xml", `<?xml version="1.0"?>
<project>
  <properties>
    <mule.version>4.4.0</mule.version>
  </properties>
</project>`)
	writeProjectFile(t, root, "src/main/mule/orders.xml", sampleMuleConfig)
	writeProjectFile(t, root, "src/main/java/com/example/OrderHandler.java", sampleJavaSource)
	writeProjectFile(t, root, "src/main/resources/transform.dwl", "%dw 2.0\noutput application/json\n---\npayload\n")
	writeProjectFile(t, root, "src/main/resources/app.properties", "http.port=8081\n")
	writeProjectFile(t, root, "src/main/resources/exchange/catalog.json", "{}\n")
	writeProjectFile(t, root, "src/test/munit/orders-suite.xml", sampleMUnitSuite)
	writeProjectFile(t, root, "src/test/java/com/example/OrderHandlerTest.java", "public class OrderHandlerTest {}\n")

	return discovery.Candidate{
		Name:        "orders-api",
		DisplayName: "orders-api",
		Source:      "local",
		Path:        root,
	}
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(config.DefaultConfig())
	require.NoError(t, err)
	a.SetWarnFunc(func(format string, args ...any) {
		t.Logf("warn: "+format, args...)
	})
	return a
}

func TestAnalyzeProject(t *testing.T) {
	a := newTestAnalyzer(t)
	p := a.AnalyzeProject(writeOrdersProject(t))

	assert.Equal(t, "orders-api", p.Name)
	assert.Equal(t, "4.4.0", p.MuleVersion)
	assert.False(t, p.IsLegacy)

	assert.Equal(t, 1, p.ConfigFiles.Count)
	assert.Equal(t, 1, p.Flows.TotalFlows)
	assert.Equal(t, 1, p.Flows.TotalSubflows)
	assert.Equal(t, map[string]int{"orders.xml": 1}, p.Flows.FlowsPerFile)

	// 7 elements minus the document root.
	assert.Equal(t, 6, p.Connectors.TotalComponents)
	assert.Equal(t, []string{"db", "http"}, p.Connectors.UniqueConnectors)
	assert.Equal(t, map[string]int{"core": 5, "http": 1, "db": 1}, p.Connectors.UsageCount)
	assert.Equal(t, 1, p.Connectors.ComponentTypes["http:listener"])
	assert.Equal(t, 1, p.Connectors.ComponentTypes["db:select"])
	assert.Equal(t, 2, p.Connectors.ComponentTypes["logger"])

	assert.Equal(t, 1, p.CustomCode.JavaFiles)
	require.Len(t, p.CustomCode.JavaClasses, 1)
	assert.Equal(t, "OrderHandler", p.CustomCode.JavaClasses[0].Name)
	assert.Equal(t, filepath.ToSlash(filepath.Join("src", "main", "java", "com", "example", "OrderHandler.java")), p.CustomCode.JavaClasses[0].Path)

	assert.Equal(t, 1, p.DataWeave.DWLFiles)
	assert.Equal(t, 1, p.DataWeave.InlineExpressions)
	assert.Equal(t, 0, p.DataWeave.ComplexTransformations)

	assert.Equal(t, 1, p.Testing.MUnitFiles)
	assert.Equal(t, 2, p.Testing.MUnitCases)
	assert.Equal(t, 1, p.Testing.OtherTestFiles)

	assert.False(t, p.SharedResources.DomainProject)
	// The catalog artifact is excluded.
	require.Len(t, p.SharedResources.CommonConfigurations, 1)
	assert.Equal(t, "app.properties", p.SharedResources.CommonConfigurations[0].Filename)

	assert.Empty(t, p.Indicators.LargeFiles)
	assert.Greater(t, p.Connectors.ComplexityScore, 0.0)
}

func TestAnalyzeProjectEmptyTree(t *testing.T) {
	a := newTestAnalyzer(t)
	p := a.AnalyzeProject(discovery.Candidate{Name: "empty", Path: t.TempDir()})

	assert.Equal(t, UnknownVersion, p.MuleVersion)
	assert.Zero(t, p.ConfigFiles.Count)
	assert.NotNil(t, p.Connectors.UniqueConnectors)
	assert.Empty(t, p.Connectors.UniqueConnectors)
	assert.Zero(t, p.Connectors.ComplexityScore)
}

func TestAnalyzeProjectDomainDetection(t *testing.T) {
	a := newTestAnalyzer(t)
	p := a.AnalyzeProject(discovery.Candidate{Name: "shared-domain", Path: t.TempDir()})
	assert.True(t, p.SharedResources.DomainProject)
}

func TestAnalyzeConfigFileUnparsableXML(t *testing.T) {
	a := newTestAnalyzer(t)

	var warnings int
	a.SetWarnFunc(func(string, ...any) { warnings++ })

	root := t.TempDir()
	writeProjectFile(t, root, "src/main/mule/broken.xml", "<mule><flow name=\"x\">\n<logger message=\"#[payload]\"/>\n")

	res, ok := a.analyzeConfigFile(root, filepath.Join(root, "src", "main", "mule", "broken.xml"))
	require.True(t, ok)
	assert.Equal(t, 1, warnings)

	// Line count and expression scan survive the parse failure; tallies
	// contribute nothing.
	assert.Equal(t, 2, res.File.SizeLines)
	assert.Equal(t, 1, res.DataWeave.InlineExpressions)
	assert.Zero(t, res.File.Flows)
	assert.Empty(t, res.Usage)
}

func TestAnalyzeProjectLargeFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Thresholds.LargeFileLines = 5
	a, err := New(cfg)
	require.NoError(t, err)

	root := t.TempDir()
	writeProjectFile(t, root, "src/main/mule/big.xml", sampleMuleConfig)

	p := a.AnalyzeProject(discovery.Candidate{Name: "big", Path: root})
	require.Len(t, p.Indicators.LargeFiles, 1)
	assert.Equal(t, "big.xml", p.Indicators.LargeFiles[0].Filename)
}

func TestAnalyzeProjectCached(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	a, err := New(cfg)
	require.NoError(t, err)

	cand := writeOrdersProject(t)
	first := a.AnalyzeProject(cand)
	second := a.AnalyzeProject(cand)

	assert.Equal(t, first.Connectors.ComplexityScore, second.Connectors.ComplexityScore)
	assert.Equal(t, first.Connectors.UsageCount, second.Connectors.UsageCount)
	assert.Equal(t, first.Flows.TotalFlows, second.Flows.TotalFlows)
}

func TestAnalyzeProjectLargeConfigAndJavaOnly(t *testing.T) {
	a := newTestAnalyzer(t)

	root := t.TempDir()
	var b strings.Builder
	b.WriteString(`<mule xmlns="http://www.mulesoft.org/schema/mule/core">` + "\n")
	for i := 0; i < 1200; i++ {
		b.WriteString("  <!-- padding -->\n")
	}
	b.WriteString("</mule>\n")
	writeProjectFile(t, root, "src/main/mule/huge.xml", b.String())
	for i := 0; i < 3; i++ {
		writeProjectFile(t, root, fmt.Sprintf("src/main/java/Util%d.java", i), sampleJavaSource)
	}

	p := a.AnalyzeProject(discovery.Candidate{Name: "bulk", Path: root})

	require.Len(t, p.Indicators.LargeFiles, 1)
	assert.Equal(t, 3, p.CustomCode.JavaFiles)
	assert.Empty(t, p.Connectors.UniqueConnectors)

	// 1 core usage * 2 + 3 java files * 5 + 30 code lines * 0.01
	// + 1 large file * 10; the root is excluded from the component total
	assert.Equal(t, 27.3, p.Connectors.ComplexityScore)
}

func TestAnalyzeProjectBrokenFileDoesNotAbort(t *testing.T) {
	a := newTestAnalyzer(t)

	var warnings int
	a.SetWarnFunc(func(string, ...any) { warnings++ })

	root := t.TempDir()
	writeProjectFile(t, root, "src/main/mule/good.xml", sampleMuleConfig)
	writeProjectFile(t, root, "src/main/mule/broken.xml", "<mule><flow>")

	p := a.AnalyzeProject(discovery.Candidate{Name: "partial", Path: root})

	assert.Equal(t, 1, warnings)
	assert.Equal(t, 2, p.ConfigFiles.Count)
	assert.Equal(t, 1, p.Flows.TotalFlows)
	assert.Greater(t, p.Connectors.ComplexityScore, 0.0)
}

func TestAnalyzeProjectManyConfigFiles(t *testing.T) {
	a := newTestAnalyzer(t)

	root := t.TempDir()
	for i := 0; i < 3; i++ {
		writeProjectFile(t, root, fmt.Sprintf("src/main/mule/api-%d.xml", i), sampleMuleConfig)
	}

	p := a.AnalyzeProject(discovery.Candidate{Name: "multi", Path: root})
	assert.Equal(t, 3, p.ConfigFiles.Count)
	assert.Equal(t, 3, p.Flows.TotalFlows)
	assert.Equal(t, 18, p.Connectors.TotalComponents)
	assert.Equal(t, []string{"db", "http"}, p.Connectors.UniqueConnectors)
}
