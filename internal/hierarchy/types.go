package hierarchy

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// Capability is a marker a page type can carry.
type Capability int

const (
	ListedPage Capability = iota + 1
	ListingsRoot
	ListingsIndex
)

// String returns the manifest spelling of the capability.
func (c Capability) String() string {
	switch c {
	case ListedPage:
		return "listed_page"
	case ListingsRoot:
		return "listings_root"
	case ListingsIndex:
		return "listings_index"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// ParseCapability converts a manifest string to a Capability, returning false if invalid.
func ParseCapability(s string) (Capability, bool) {
	switch s {
	case "listed_page":
		return ListedPage, true
	case "listings_root":
		return ListingsRoot, true
	case "listings_index":
		return ListingsIndex, true
	default:
		return 0, false
	}
}

// AllCapabilities returns every known capability.
func AllCapabilities() []Capability {
	return []Capability{ListedPage, ListingsRoot, ListingsIndex}
}

// Listings is the association data a root or index declares.
type Listings struct {
	// Classes names the listed-page types managed by the owner.
	Classes []string
	// IndexOnly restricts the owner to top-level instances of Classes.
	// Nil leaves the setting to the nearest ancestor that declares it.
	IndexOnly *bool
}

// TopLevelOnly reports the IndexOnly setting, false when unset.
func (l Listings) TopLevelOnly() bool {
	return l.IndexOnly != nil && *l.IndexOnly
}

// Type is a single node in the page-type tree.
type Type struct {
	Name         string
	Parent       string // empty for the tree root
	Capabilities []Capability
	Listings     Listings
	CanBeRoot    bool
	Singular     string
	Plural       string
}

// Declares reports whether the type itself (not an ancestor) declares c.
func (t Type) Declares(c Capability) bool {
	for _, have := range t.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// SingularName returns the configured singular title or one derived from the name.
func (t Type) SingularName() string {
	if t.Singular != "" {
		return t.Singular
	}
	return humanize(t.Name)
}

// PluralName returns the configured plural title or the inflected plural of
// SingularName.
func (t Type) PluralName() string {
	if t.Plural != "" {
		return t.Plural
	}
	return pluralize(t.SingularName())
}

func (t Type) clone() Type {
	c := t
	c.Capabilities = append([]Capability(nil), t.Capabilities...)
	c.Listings.Classes = append([]string(nil), t.Listings.Classes...)
	if t.Listings.IndexOnly != nil {
		v := *t.Listings.IndexOnly
		c.Listings.IndexOnly = &v
	}
	return c
}

// humanize splits a CamelCase identifier into words ("ArticlePage" -> "Article Page").
func humanize(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pluralize inflects the last word of a title, keeping its capitalization.
// Inflection rules match lower-case suffixes only.
func pluralize(s string) string {
	if s == "" {
		return s
	}
	cut := strings.LastIndexByte(s, ' ') + 1
	head, last := s[:cut], s[cut:]
	if last == "" || (last == strings.ToUpper(last) && len([]rune(last)) > 1) {
		return s + "s"
	}

	plural := inflect.Pluralize(strings.ToLower(last))
	if r := []rune(last); unicode.IsUpper(r[0]) {
		p := []rune(plural)
		p[0] = unicode.ToUpper(p[0])
		plural = string(p)
	}
	return head + plural
}
