package helpers

import (
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Filter returns the items whose name matches the glob pattern. An empty
// pattern matches everything.
func Filter[T any](items []T, pattern string, name func(T) string) ([]T, error) {
	if pattern == "" {
		return items, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid filter: %s", pattern)
	}

	out := []T{}

	for _, item := range items {
		if g.Match(name(item)) {
			out = append(out, item)
		}
	}

	return out, nil
}
