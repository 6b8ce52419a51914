package analyzer

import (
	"os"
	"path/filepath"

	"github.com/panbanda/mulemeter/internal/mulexml"
	"github.com/panbanda/mulemeter/pkg/models"
)

const munitURI = "http://www.mulesoft.org/schema/mule/munit"

// analyzeTests surveys the project's test surface: MUnit suites with their
// individual test cases, plus any scripted tests in other languages.
func (a *Analyzer) analyzeTests(p *models.Project) {
	munitDir := filepath.Join(p.Path, "src", "test", "munit")
	suites := globByExt(munitDir, ".xml")
	p.Testing.MUnitFiles = len(suites)

	for _, path := range suites {
		content, err := os.ReadFile(path)
		if err != nil {
			a.warnf("Warning: Could not read MUnit file %s: %v", path, err)
			continue
		}
		doc, err := mulexml.Parse(content)
		if err != nil {
			a.warnf("Warning: Could not parse MUnit file %s: %v", path, err)
			continue
		}
		m := mulexml.ResolveNamespaces(doc.Root())
		p.Testing.MUnitCases += mulexml.CountElements(doc, m, munitURI, "test")
	}

	testDir := filepath.Join(p.Path, "src", "test")
	p.Testing.OtherTestFiles = len(globByExt(testDir, ".java", ".groovy", ".py"))
}

// analyzeSharedResources flags domain projects and inventories the
// configuration files other projects commonly share. Exchange catalog
// artifacts are excluded.
func (a *Analyzer) analyzeSharedResources(p *models.Project) {
	p.SharedResources.DomainProject = containsFold(p.Name, "domain")

	resourcesDir := filepath.Join(p.Path, "src", "main", "resources")
	for _, path := range globByExt(resourcesDir, ".properties", ".yaml", ".yml", ".json") {
		if containsFold(path, "catalog") {
			continue
		}
		rel, err := filepath.Rel(p.Path, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		p.SharedResources.CommonConfigurations = append(p.SharedResources.CommonConfigurations, models.ResourceFile{
			Filename: filepath.Base(path),
			Type:     filepath.Ext(path),
			Path:     filepath.ToSlash(rel),
		})
	}
}
