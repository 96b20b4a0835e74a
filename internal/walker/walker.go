// Package walker enumerates candidate source files under a set of roots
// and hands the engine a flat list of paths. The engine itself never
// walks a directory.
package walker

import (
	"os"
	"path/filepath"
	"sort"
)

// Walk resolves roots (files or directories) into a sorted, de-duplicated
// list of source file paths ending in suffix. A root that is a directory
// is scanned shallowly unless recursive is set, in which case its entire
// subtree is descended.
func Walk(roots []string, suffix string, recursive bool) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		if err := walkDir(root, suffix, recursive, add); err != nil {
			return nil, err
		}
	}

	sort.Strings(out)
	return out, nil
}

func walkDir(root, suffix string, recursive bool, add func(string)) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		full := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			if recursive {
				if err := walkDir(full, suffix, recursive, add); err != nil {
					return err
				}
			}
			continue
		}
		if hasSuffix(entry.Name(), suffix) {
			add(full)
		}
	}
	return nil
}

func hasSuffix(name, suffix string) bool {
	return len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix
}
