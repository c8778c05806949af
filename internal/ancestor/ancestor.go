// Package ancestor finds the nearest shared supertype of a set of page types.
package ancestor

import (
	"errors"
	"fmt"

	"github.com/listings-labs/listings/internal/hierarchy"
)

// ErrNoCommonAncestor is returned when the candidates share no ancestor,
// for example when one of them is missing from the hierarchy.
var ErrNoCommonAncestor = errors.New("no common ancestor")

// Func resolves the closest common ancestor of names.
type Func func(names []string) (string, error)

// Closest returns a Func that walks h's ancestry chains. The result is the
// deepest type present in every candidate's ancestry, which is a candidate
// itself when it is an ancestor of all the others.
func Closest(h hierarchy.Hierarchy) Func {
	return func(names []string) (string, error) {
		if len(names) == 0 {
			return "", fmt.Errorf("resolving common ancestor of empty set: %w", ErrNoCommonAncestor)
		}

		common := h.Ancestry(names[0])
		for _, name := range names[1:] {
			common = sharedPrefix(common, h.Ancestry(name))
			if len(common) == 0 {
				break
			}
		}
		if len(common) == 0 {
			return "", fmt.Errorf("resolving common ancestor of %v: %w", names, ErrNoCommonAncestor)
		}
		return common[len(common)-1], nil
	}
}

// sharedPrefix returns the longest common leading run of two root-first chains.
func sharedPrefix(a, b []string) []string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}
