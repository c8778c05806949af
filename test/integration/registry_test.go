//go:build integration

package integration_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/listings-labs/listings/internal/cache"
	"github.com/listings-labs/listings/internal/hierarchy"
	"github.com/listings-labs/listings/internal/manifest"
)

func TestBadgerCache_PersistsAcrossOpens(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, env.ManifestPath, siteManifest)

	store := openBadger(t, env.CacheDir)
	_, set := loadSet(t, env.ManifestPath, store)
	if err := set.FlushAll(); err != nil {
		t.Fatalf("FlushAll: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("closing badger: %v", err)
	}

	reopened := openBadger(t, env.CacheDir)
	defer reopened.Close()

	got, ok := reopened.Get("ListedPageClasses-Classes")
	if !ok {
		t.Fatal("listed page classes not persisted")
	}
	if want := []string{"ArticlePage", "EventPage"}; !reflect.DeepEqual(got, want) {
		t.Errorf("persisted classes = %v, want %v", got, want)
	}
	if !reopened.Has("ListingsRootClasses-Classes") || !reopened.Has("ListedIndexClasses-Classes") {
		t.Error("roots or indexes classes not persisted")
	}
}

func TestBadgerCache_StaleManifestDiscarded(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, env.ManifestPath, siteManifest)

	store := openBadger(t, env.CacheDir)
	defer store.Close()

	_, _, data, err := manifest.Load(env.ManifestPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cache.EnsureFingerprint(store, "ListingsManifest-Fingerprint", cache.Sum(data)); err != nil {
		t.Fatal(err)
	}
	_, set := loadSet(t, env.ManifestPath, store)
	if _, err := set.Roots.Classes(true); err != nil {
		t.Fatal(err)
	}

	// NewsSection stops being a listings root.
	changed := strings.Replace(siteManifest, "capabilities: [listings_root]", "capabilities: [listings_index]", 1)
	writeFile(t, env.ManifestPath, changed)

	_, _, data, err = manifest.Load(env.ManifestPath)
	if err != nil {
		t.Fatal(err)
	}
	cleared, err := cache.EnsureFingerprint(store, "ListingsManifest-Fingerprint", cache.Sum(data))
	if err != nil {
		t.Fatal(err)
	}
	if !cleared {
		t.Fatal("changed manifest did not clear the cache")
	}

	_, set = loadSet(t, env.ManifestPath, store)
	roots, err := set.Roots.Classes(true)
	if err != nil {
		t.Fatal(err)
	}
	if roots.Len() != 0 {
		t.Errorf("roots after manifest change = %v, want none", roots.Names())
	}
}

func TestRegistries_EndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, env.ManifestPath, siteManifest)

	store := openBadger(t, env.CacheDir)
	defer store.Close()
	tree, set := loadSet(t, env.ManifestPath, store)

	listed, err := set.Listed.Classes(true)
	if err != nil {
		t.Fatalf("Classes: %v", err)
	}
	if want := []string{"ArticlePage", "EventPage", "FeaturedArticlePage"}; !reflect.DeepEqual(listed.Names(), want) {
		t.Errorf("listed = %v, want %v", listed.Names(), want)
	}

	roots, err := set.Roots.ClassesForPage("FeaturedArticlePage")
	if err != nil {
		t.Fatalf("ClassesForPage: %v", err)
	}
	if !reflect.DeepEqual(roots.Names(), []string{"NewsSection"}) {
		t.Errorf("roots for FeaturedArticlePage = %v", roots.Names())
	}

	// A subclass registered at runtime shows up after a flush.
	if err := tree.Register(hierarchy.Type{Name: "LocalNewsSection", Parent: "NewsSection"}); err != nil {
		t.Fatal(err)
	}
	if err := set.FlushAll(); err != nil {
		t.Fatal(err)
	}
	roots, err = set.Roots.ClassesForPage("ArticlePage")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(roots.Names(), []string{"NewsSection", "LocalNewsSection"}) {
		t.Errorf("roots after register = %v", roots.Names())
	}
}
