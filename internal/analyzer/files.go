package analyzer

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// globByExt recursively collects files under root whose extension matches
// one of exts (lowercase, with dot). A missing root yields no files: absent
// conventional subdirectories are zero contribution, not errors.
func globByExt(root string, exts ...string) []string {
	var files []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range exts {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})

	return files
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
