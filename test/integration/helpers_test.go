//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/listings-labs/listings/internal/cache"
	"github.com/listings-labs/listings/internal/hierarchy"
	"github.com/listings-labs/listings/internal/listings"
	"github.com/listings-labs/listings/internal/manifest"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // LISTINGS_HOME
	CacheDir     string // badger directory
	ManifestPath string
}

// setupTestEnv creates isolated temp directories and points LISTINGS_HOME at
// one of them so no test touches the real home directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
	}
	env.CacheDir = filepath.Join(env.HomeDir, "cache")
	env.ManifestPath = filepath.Join(t.TempDir(), "listings.yaml")
	t.Setenv("LISTINGS_HOME", env.HomeDir)
	return env
}

const siteManifest = `schema_version: "1.0.0"
root: SiteTree
types:
  - name: Page
    parent: SiteTree
  - name: ArticlePage
    parent: Page
    capabilities: [listed_page]
    can_be_root: true
  - name: FeaturedArticlePage
    parent: ArticlePage
  - name: EventPage
    parent: Page
    capabilities: [listed_page]
  - name: NewsSection
    parent: Page
    capabilities: [listings_root]
    listed_pages_classes: [ArticlePage]
  - name: NewsIndex
    parent: Page
    capabilities: [listings_index]
    listed_pages_classes: [ArticlePage, EventPage]
    listed_pages_index_only: true
`

// writeFile creates a file with the given content, creating parent dirs as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// loadSet loads the manifest at path and wires registries over store.
func loadSet(t *testing.T, path string, store cache.Store) (*hierarchy.Tree, *listings.Set) {
	t.Helper()
	m, tree, _, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("loading %s: %v", path, err)
	}
	return tree, listings.NewSet(tree, store, listings.WithBaseType(m.BaseType()))
}

func openBadger(t *testing.T, dir string) cache.Store {
	t.Helper()
	store, err := cache.Open(cache.Config{Backend: cache.BackendBadger, Dir: dir})
	if err != nil {
		t.Fatalf("opening badger at %s: %v", dir, err)
	}
	return store
}
