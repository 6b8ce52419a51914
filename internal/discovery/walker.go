// Package discovery locates Mule project roots in a directory tree.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxDepth bounds how far below the scan root projects are searched
// for when no explicit depth is configured.
const DefaultMaxDepth = 4

// Candidate is a discovered project root, identified but not yet analyzed.
type Candidate struct {
	// Name is the project directory's base name.
	Name string
	// Path is the absolute path to the project root.
	Path string
	// RelPath is the path relative to the scan root, using forward slashes.
	RelPath string
	// DisplayName is the relative path for nested projects and the bare
	// name for top-level ones, preserving traceability in aggregate output.
	DisplayName string
	// Source is the parent grouping ("team-a/payments" style) for nested
	// projects, or "local" for top-level ones.
	Source string
	// Depth is the number of path segments below the scan root.
	Depth int
}

// Walker finds Mule project roots beneath a scan root. A directory is a
// project root when it contains a Maven build descriptor, a Mule packaging
// manifest, or the conventional src/main/mule layout. Once a directory is
// classified as a project the walk does not descend into it, so a vendored
// project-like subdirectory inside a project is hidden by design.
type Walker struct {
	maxDepth int
	targets  map[string]bool
}

// NewWalker creates a walker with the given depth bound and optional set of
// target project names. A nil or empty target list matches every project.
func NewWalker(maxDepth int, targets []string) *Walker {
	w := &Walker{maxDepth: maxDepth}
	if w.maxDepth <= 0 {
		w.maxDepth = DefaultMaxDepth
	}
	if len(targets) > 0 {
		w.targets = make(map[string]bool, len(targets))
		for _, t := range targets {
			w.targets[t] = true
		}
	}
	return w
}

// Discover walks the tree depth-first and returns project roots in
// traversal order. A nonexistent root is the one fatal error of a run.
func (w *Walker) Discover(root string) ([]Candidate, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("repository folder not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var found []Candidate
	w.descend(absRoot, absRoot, 0, &found)
	return found, nil
}

// descend visits the children of dir, classifying each subdirectory as a
// project root or recursing into it. Directories beyond the depth bound are
// skipped silently.
func (w *Walker) descend(dir, base string, depth int, found *[]Candidate) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// An unreadable subdirectory degrades to zero contribution.
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		childDepth := depth + 1
		if childDepth > w.maxDepth {
			continue
		}

		child := filepath.Join(dir, entry.Name())
		if !IsProjectRoot(child) {
			w.descend(child, base, childDepth, found)
			continue
		}

		// Project roots are leaves: no recursion into their subtree,
		// whether or not the name filter keeps them.
		if w.targets != nil && !w.targets[entry.Name()] {
			continue
		}

		rel, err := filepath.Rel(base, child)
		if err != nil {
			continue
		}
		*found = append(*found, makeCandidate(entry.Name(), child, rel, childDepth))
	}
}

// makeCandidate derives the display identity of a project from its relative
// location: nested projects keep their full relative path.
func makeCandidate(name, path, rel string, depth int) Candidate {
	rel = filepath.ToSlash(rel)
	c := Candidate{
		Name:        name,
		Path:        path,
		RelPath:     rel,
		DisplayName: name,
		Source:      "local",
		Depth:       depth,
	}
	if idx := strings.LastIndex(rel, "/"); idx >= 0 {
		c.DisplayName = rel
		c.Source = rel[:idx]
	}
	return c
}

// projectIndicators are the files and directories whose presence marks a
// Mule project root.
var projectIndicators = []string{
	"pom.xml",
	"mule-artifact.json",
	filepath.Join("src", "main", "mule"),
}

// IsProjectRoot reports whether a directory is a Mule project root.
func IsProjectRoot(dir string) bool {
	for _, indicator := range projectIndicators {
		if _, err := os.Stat(filepath.Join(dir, indicator)); err == nil {
			return true
		}
	}
	return false
}
