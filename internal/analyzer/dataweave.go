package analyzer

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/panbanda/mulemeter/pkg/models"
)

// expressionPattern is one lexical pattern for embedded DataWeave.
type expressionPattern struct {
	re *regexp.Regexp
	// trimDelimiter drops the trailing body delimiter from the match before
	// the line span is measured.
	trimDelimiter bool
}

// ExpressionScanner lexically detects inline DataWeave expressions in raw
// file text. Three independent pattern families are applied and their
// matches summed; overlap between families is accepted as a conservative
// upper bound and deliberately not deduplicated. The scanner never parses
// the expression language, so malformed or truncated expressions degrade to
// fewer matches rather than errors.
type ExpressionScanner struct {
	patterns    []expressionPattern
	complexSpan int
}

// NewExpressionScanner creates a scanner. Matches spanning more than
// complexSpan lines count as complex transformations.
func NewExpressionScanner(complexSpan int) *ExpressionScanner {
	return &ExpressionScanner{
		complexSpan: complexSpan,
		patterns: []expressionPattern{
			// Simple #[...] expressions.
			{re: regexp.MustCompile(`(?is)#\[.*?\]`)},
			// CDATA-wrapped expressions.
			{re: regexp.MustCompile(`(?is)<!\[CDATA\[#\[.*?\]\]\]>`)},
			// Transformation blocks: output header followed by the --- body
			// separator. The closing delimiter is matched so the body is
			// spanned, then trimmed before measuring.
			{re: regexp.MustCompile(`(?is)output\s+application/\w+.*?---.*?(?:\]\]>|\])`), trimDelimiter: true},
		},
	}
}

// analyzeDataWeaveFiles counts standalone .dwl transformation files under
// the conventional resources directory. Their line counts fold into the
// same totals as inline expressions.
func (a *Analyzer) analyzeDataWeaveFiles(p *models.Project) {
	resourcesDir := filepath.Join(p.Path, "src", "main", "resources")
	files := globByExt(resourcesDir, ".dwl")
	p.DataWeave.DWLFiles = len(files)

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			a.warnf("Warning: Could not read DataWeave file %s: %v", path, err)
			continue
		}
		lines := countLines(content)
		p.DataWeave.TotalLines += lines
		if lines > a.cfg.Thresholds.ComplexDWLFileLines {
			p.DataWeave.ComplexTransformations++
		}
	}
}

// Scan counts expression matches in content and classifies them by size.
func (s *ExpressionScanner) Scan(content []byte) models.DataWeaveStats {
	var stats models.DataWeaveStats
	text := string(content)

	for _, p := range s.patterns {
		for _, match := range p.re.FindAllString(text, -1) {
			if p.trimDelimiter {
				match = strings.TrimSuffix(match, "]]>")
				match = strings.TrimSuffix(match, "]")
			}
			span := strings.Count(match, "\n") + 1

			stats.InlineExpressions++
			stats.TotalLines += span
			if span > s.complexSpan {
				stats.ComplexTransformations++
			}
		}
	}

	return stats
}
