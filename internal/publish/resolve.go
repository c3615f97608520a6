package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Resolve maps a selector to exactly one project manifest path.
//
// The selector may be an explicit manifest path, a directory searched for
// *.project.yaml files, or a glob pattern. Exactly one manifest must match:
// zero matches fail with ErrNoTarget, more than one with ErrAmbiguousTarget
// listing the candidates, before any build output is produced.
func Resolve(selector string) (string, error) {
	if selector == "" {
		selector = "."
	}

	info, err := os.Stat(selector)
	switch {
	case err == nil && !info.IsDir():
		if !strings.HasSuffix(selector, ManifestSuffix) {
			return "", fmt.Errorf("%w: %s is not a %s file", ErrNoTarget, selector, ManifestSuffix)
		}
		return selector, nil
	case err == nil && info.IsDir():
		return resolveMatches(selector, filepath.Join(selector, "*"+ManifestSuffix))
	default:
		// Not an existing path: treat the selector as a glob pattern.
		return resolveMatches(selector, selector)
	}
}

func resolveMatches(selector, pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("%w: bad pattern %q: %v", ErrNoTarget, pattern, err)
	}

	manifests := matches[:0]
	for _, m := range matches {
		if strings.HasSuffix(m, ManifestSuffix) {
			manifests = append(manifests, m)
		}
	}

	switch len(manifests) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNoTarget, selector)
	case 1:
		return manifests[0], nil
	default:
		sort.Strings(manifests)
		return "", fmt.Errorf("%w: %s matched %s; pass an explicit manifest path",
			ErrAmbiguousTarget, selector, strings.Join(manifests, ", "))
	}
}
