// Package analyzer implements the per-project Mule assessment pipeline and
// the cross-project aggregation.
package analyzer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/panbanda/mulemeter/internal/cache"
	"github.com/panbanda/mulemeter/internal/discovery"
	"github.com/panbanda/mulemeter/internal/vcs"
	"github.com/panbanda/mulemeter/pkg/config"
	"github.com/panbanda/mulemeter/pkg/models"
)

// Analyzer runs the full analysis pipeline for one project at a time. It
// holds no per-project state, so a single Analyzer may serve the project
// worker pool.
type Analyzer struct {
	cfg     *config.Config
	scanner *ExpressionScanner
	java    *JavaAnalyzer
	scorer  *Scorer
	store   *cache.Cache
	warnf   func(format string, args ...any)
}

// New creates a project analyzer from configuration.
func New(cfg *config.Config) (*Analyzer, error) {
	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	return &Analyzer{
		cfg:     cfg,
		scanner: NewExpressionScanner(cfg.Thresholds.ComplexExpressionSpan),
		java:    NewJavaAnalyzer(),
		scorer:  NewScorer(cfg.Weights),
		store:   store,
		warnf: func(format string, args ...any) {
			color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
		},
	}, nil
}

// SetWarnFunc redirects per-file warnings. Tests use this to capture them.
func (a *Analyzer) SetWarnFunc(fn func(format string, args ...any)) {
	a.warnf = fn
}

// AnalyzeProject analyzes a single discovered project. Per-file failures
// are warned and recovered, so the returned project always carries a score
// covering every file that did parse.
func (a *Analyzer) AnalyzeProject(c discovery.Candidate) *models.Project {
	p := &models.Project{
		Name:        c.Name,
		DisplayName: c.DisplayName,
		Source:      c.Source,
		Path:        c.Path,
		Depth:       c.Depth,
		Repository:  vcs.RemoteURL(c.Path),
	}
	p.Flows.FlowsPerFile = make(map[string]int)
	p.Connectors.UniqueConnectors = []string{}
	p.Connectors.UsageCount = make(map[string]int)
	p.Connectors.ComponentTypes = make(map[string]int)

	p.MuleVersion = DetectMuleVersion(c.Path, a.warnf)
	p.IsLegacy = IsLegacyVersion(p.MuleVersion)

	a.analyzeConfigFiles(p)
	a.analyzeCustomCode(p)
	a.analyzeDataWeaveFiles(p)
	a.analyzeTests(p)
	a.analyzeSharedResources(p)

	p.Connectors.ComplexityScore = a.scorer.Score(p)
	return p
}
