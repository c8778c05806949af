package scaffold

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/listings-labs/listings/internal/hierarchy"
	"github.com/listings-labs/listings/internal/manifest"
)

func TestNewScaffoldData(t *testing.T) {
	d := NewScaffoldData("", "Blog", "listings")
	if d.Root != "SiteTree" {
		t.Errorf("Root = %q, want SiteTree", d.Root)
	}
	if d.SchemaVersion != "1.0.0" {
		t.Errorf("SchemaVersion = %q, want 1.0.0", d.SchemaVersion)
	}
	if d.Date == "" {
		t.Error("Date should be populated")
	}
}

func TestTemplates(t *testing.T) {
	if got, want := Templates(), []string{"minimal", "site"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Templates() = %v, want %v", got, want)
	}
}

func TestGenerate_LoadsCleanly(t *testing.T) {
	for _, set := range Templates() {
		t.Run(set, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "listings.yaml")
			result, err := Generate(set, NewScaffoldData("SiteTree", "", "listings"), path)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if len(result.Warnings) > 0 {
				t.Errorf("unexpected warnings: %v", result.Warnings)
			}

			_, tree, _, err := manifest.Load(path)
			if err != nil {
				t.Fatalf("generated manifest does not load: %v", err)
			}
			if !tree.HasCapability("ArticlePage", hierarchy.ListedPage) {
				t.Error("ArticlePage should be a listed page")
			}
		})
	}
}

func TestGenerate_Prefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "listings.yaml")
	if _, err := Generate("site", NewScaffoldData("Root", "Blog", "listings"), path); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	_, tree, _, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"Root", "BlogPage", "BlogNewsSection"}
	if got := tree.Ancestry("BlogNewsSection"); !reflect.DeepEqual(got, want) {
		t.Errorf("Ancestry = %v, want %v", got, want)
	}
}

func TestGenerate_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.yaml")
	if err := os.WriteFile(path, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Generate("minimal", NewScaffoldData("", "", "listings"), path)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("Generate() error = %v, want already exists", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep" {
		t.Error("existing file was modified")
	}
}

func TestGenerate_UnknownTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.yaml")
	if _, err := Generate("blog", NewScaffoldData("", "", "listings"), path); err == nil {
		t.Fatal("expected error for unknown template set")
	}
}

func TestGenerate_InvalidRootWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.yaml")
	result, err := Generate("minimal", NewScaffoldData("Site Tree", "", "listings"), path)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected schema warnings for a root name with a space")
	}
}
