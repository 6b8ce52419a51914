package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/panbanda/mulemeter/internal/cache"
	"github.com/panbanda/mulemeter/internal/mulexml"
	"github.com/panbanda/mulemeter/pkg/models"
)

// fileAnalysis is the per-file result of the configuration pipeline, and
// also the cache payload.
type fileAnalysis struct {
	File      models.ConfigFile     `json:"file"`
	Usage     map[string]int        `json:"usage"`
	Types     map[string]int        `json:"types"`
	Declared  []string              `json:"declared"`
	DataWeave models.DataWeaveStats `json:"dataweave"`
}

func (a *Analyzer) analyzeConfigFiles(p *models.Project) {
	muleDir := filepath.Join(p.Path, "src", "main", "mule")
	files := globByExt(muleDir, ".xml")
	p.ConfigFiles.Count = len(files)

	declared := make(map[string]bool)
	for _, path := range files {
		res, ok := a.analyzeConfigFile(p.Path, path)
		if !ok {
			continue
		}

		p.ConfigFiles.Files = append(p.ConfigFiles.Files, res.File)
		p.Flows.TotalFlows += res.File.Flows
		p.Flows.TotalSubflows += res.File.Subflows
		p.Flows.FlowsPerFile[res.File.Filename] = res.File.Flows
		p.Connectors.TotalComponents += res.File.Components

		for name, n := range res.Usage {
			p.Connectors.UsageCount[name] += n
		}
		for name, n := range res.Types {
			p.Connectors.ComponentTypes[name] += n
		}
		for _, name := range res.Declared {
			declared[name] = true
		}

		p.DataWeave.InlineExpressions += res.DataWeave.InlineExpressions
		p.DataWeave.ComplexTransformations += res.DataWeave.ComplexTransformations
		p.DataWeave.TotalLines += res.DataWeave.TotalLines

		if res.File.SizeLines > a.cfg.Thresholds.LargeFileLines {
			p.Indicators.LargeFiles = append(p.Indicators.LargeFiles, models.LargeFile{
				Filename: res.File.Filename,
				Lines:    res.File.SizeLines,
			})
		}
	}

	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)
	p.Connectors.UniqueConnectors = names
}

// analyzeConfigFile reads one Mule XML file and extracts everything the
// project needs from it in a single pass. A read failure drops the file
// with a warning; a parse failure keeps the line count and expression scan
// but contributes no tallies.
func (a *Analyzer) analyzeConfigFile(projectRoot, path string) (fileAnalysis, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		a.warnf("Warning: Could not read configuration file %s: %v", path, err)
		return fileAnalysis{}, false
	}

	rel, err := filepath.Rel(projectRoot, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	key := a.cacheKey(content, rel)
	if key != "" {
		if data, ok := a.store.Get(key); ok {
			var cached fileAnalysis
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true
			}
		}
	}

	res := fileAnalysis{
		File: models.ConfigFile{
			Filename:     filepath.Base(path),
			RelativePath: rel,
			SizeLines:    countLines(content),
		},
		Usage:     make(map[string]int),
		Types:     make(map[string]int),
		DataWeave: a.scanner.Scan(content),
	}

	doc, err := mulexml.Parse(content)
	if err != nil {
		a.warnf("Warning: Could not parse XML file %s: %v", path, err)
	} else {
		m := mulexml.ResolveNamespaces(doc.Root())
		tally := mulexml.TallyElements(doc, m)
		res.File.Flows = tally.Flows
		res.File.Subflows = tally.Subflows
		res.File.Components = tally.Components
		res.File.TagsByNamespace = tally.TagsByNamespace

		attr := mulexml.AttributeConnectors(doc, m)
		res.Usage = attr.ConnectorUsage
		res.Types = attr.ComponentTypes
		res.Declared = attr.DeclaredConnectors
	}

	if key != "" {
		if data, err := json.Marshal(res); err == nil {
			a.store.Set(key, data)
		}
	}
	return res, true
}

// cacheKey derives a content-addressed key that also pins the file's
// relative path and the scan threshold, so a config change invalidates
// cached results.
func (a *Analyzer) cacheKey(content []byte, rel string) string {
	if !a.store.Enabled() {
		return ""
	}
	var buf bytes.Buffer
	buf.Write(content)
	fmt.Fprintf(&buf, "|%s|%d", rel, a.cfg.Thresholds.ComplexExpressionSpan)
	return cache.HashBytes(buf.Bytes())
}
