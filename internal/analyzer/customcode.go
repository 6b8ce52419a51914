package analyzer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/panbanda/mulemeter/pkg/models"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// JavaAnalyzer extracts structure from custom Java sources. Parse failures
// degrade to a filename-derived class record; custom code never fails a
// project's analysis. A fresh tree-sitter parser is created per file so the
// analyzer is safe under the project worker pool.
type JavaAnalyzer struct{}

// NewJavaAnalyzer creates a Java source analyzer.
func NewJavaAnalyzer() *JavaAnalyzer {
	return &JavaAnalyzer{}
}

// AnalyzeFile reads one Java source file and returns its class record.
func (a *JavaAnalyzer) AnalyzeFile(path, relPath string) (models.JavaClass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.JavaClass{}, err
	}

	jc := models.JavaClass{
		Name:  strings.TrimSuffix(filepath.Base(path), ".java"),
		Path:  relPath,
		Lines: countLines(data),
	}

	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	defer parser.Close()

	tree, err := parser.ParseCtx(context.Background(), nil, data)
	if err != nil || tree == nil {
		return jc, nil
	}
	defer tree.Close()

	classes, methods := countJavaDeclarations(tree.RootNode())
	jc.Classes = classes
	jc.Methods = methods
	return jc, nil
}

// countJavaDeclarations walks the AST counting type and method declarations.
func countJavaDeclarations(node *sitter.Node) (classes, methods int) {
	switch node.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		classes++
	case "method_declaration", "constructor_declaration":
		methods++
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c, m := countJavaDeclarations(node.NamedChild(i))
		classes += c
		methods += m
	}
	return classes, methods
}

func (a *Analyzer) analyzeCustomCode(p *models.Project) {
	javaDir := filepath.Join(p.Path, "src", "main", "java")
	files := globByExt(javaDir, ".java")
	p.CustomCode.JavaFiles = len(files)

	for _, path := range files {
		rel, err := filepath.Rel(p.Path, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		jc, err := a.java.AnalyzeFile(path, filepath.ToSlash(rel))
		if err != nil {
			a.warnf("Warning: Could not read Java file %s: %v", path, err)
			continue
		}
		p.CustomCode.JavaClasses = append(p.CustomCode.JavaClasses, jc)
		p.CustomCode.TotalLines += jc.Lines
	}
}

// countLines counts lines the way an editor would: content without a
// trailing newline still counts its last line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte("\n"))
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
