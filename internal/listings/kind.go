package listings

import (
	"fmt"
	"strings"

	"github.com/listings-labs/listings/internal/hierarchy"
)

// Kind selects which marker capability a Registry tracks.
type Kind int

const (
	ListedPages Kind = iota + 1
	ListingsRoots
	ListingsIndexes
)

// AllKinds returns the kinds in wiring order: listed pages first, since the
// other two validate page types against it.
func AllKinds() []Kind {
	return []Kind{ListedPages, ListingsRoots, ListingsIndexes}
}

func (k Kind) String() string {
	switch k {
	case ListedPages:
		return "ListedPages"
	case ListingsRoots:
		return "ListingsRoots"
	case ListingsIndexes:
		return "ListingsIndexes"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Capability returns the marker a type must carry to belong to k.
func (k Kind) Capability() hierarchy.Capability {
	switch k {
	case ListingsRoots:
		return hierarchy.ListingsRoot
	case ListingsIndexes:
		return hierarchy.ListingsIndex
	default:
		return hierarchy.ListedPage
	}
}

// CachePrefix returns the key prefix the registry of kind k writes under.
func (k Kind) CachePrefix() string {
	switch k {
	case ListingsRoots:
		return "ListingsRootClasses"
	case ListingsIndexes:
		return "ListedIndexClasses"
	default:
		return "ListedPageClasses"
	}
}

// ParseKind accepts the short CLI names (listed, roots, indexes) as well as
// the String form.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "listed", "listed-pages", "listedpages", "pages":
		return ListedPages, true
	case "roots", "root", "listings-roots", "listingsroots":
		return ListingsRoots, true
	case "indexes", "index", "listings-indexes", "listingsindexes":
		return ListingsIndexes, true
	default:
		return 0, false
	}
}
