package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// DefaultBlendGlob matches .blend files at any depth under a scan root.
const DefaultBlendGlob = "**/*.blend"

// FindBlendFiles discovers .blend files under root matching pattern
// (doublestar syntax). Results are absolute-ish paths joined to root,
// sorted for stable multi-file scan order.
func FindBlendFiles(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultBlendGlob
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob %q: %w", pattern, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(root, m))
	}
	sort.Strings(out)
	return out, nil
}
