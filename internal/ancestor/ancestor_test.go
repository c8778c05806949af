package ancestor

import (
	"errors"
	"testing"

	"github.com/listings-labs/listings/internal/hierarchy"
)

func newTree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	tr, err := hierarchy.NewTree(hierarchy.Type{Name: "SiteTree"})
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	for _, ty := range []hierarchy.Type{
		{Name: "Page", Parent: "SiteTree"},
		{Name: "ArticlePage", Parent: "Page"},
		{Name: "FeaturedArticlePage", Parent: "ArticlePage"},
		{Name: "OpinionPage", Parent: "ArticlePage"},
		{Name: "EventPage", Parent: "Page"},
		{Name: "RedirectorPage", Parent: "SiteTree"},
	} {
		if err := tr.Register(ty); err != nil {
			t.Fatalf("Register(%s): %v", ty.Name, err)
		}
	}
	return tr
}

func TestClosest(t *testing.T) {
	closest := Closest(newTree(t))

	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"siblings", []string{"ArticlePage", "EventPage"}, "Page"},
		{"nested siblings", []string{"FeaturedArticlePage", "OpinionPage"}, "ArticlePage"},
		{"ancestor among candidates", []string{"ArticlePage", "FeaturedArticlePage"}, "ArticlePage"},
		{"across branches", []string{"FeaturedArticlePage", "RedirectorPage"}, "SiteTree"},
		{"single", []string{"EventPage"}, "EventPage"},
		{"order independent", []string{"EventPage", "FeaturedArticlePage", "OpinionPage"}, "Page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := closest(tt.input)
			if err != nil {
				t.Fatalf("Closest(%v) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Closest(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClosest_NoAncestor(t *testing.T) {
	closest := Closest(newTree(t))

	for _, input := range [][]string{nil, {"Missing"}, {"ArticlePage", "Missing"}} {
		if _, err := closest(input); !errors.Is(err, ErrNoCommonAncestor) {
			t.Errorf("Closest(%v) error = %v, want ErrNoCommonAncestor", input, err)
		}
	}
}
