package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/listings-labs/listings/internal/manifest"
)

//go:embed scaffolds
var scaffoldFS embed.FS

// DefaultTemplate is the template set used when none is named.
const DefaultTemplate = "site"

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Root          string // e.g., "SiteTree"
	Prefix        string // prepended to every generated type name, may be empty
	SchemaVersion string
	Generator     string // CLI name written into the header comment
	Date          string // YYYY-MM-DD
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
func NewScaffoldData(root, prefix, generator string) *ScaffoldData {
	if root == "" {
		root = "SiteTree"
	}
	return &ScaffoldData{
		Root:          root,
		Prefix:        prefix,
		SchemaVersion: "1.0.0",
		Generator:     generator,
		Date:          time.Now().Format("2006-01-02"),
	}
}

// Templates lists the embedded template set names.
func Templates() []string {
	entries, err := fs.ReadDir(scaffoldFS, "scaffolds")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Generate renders the named template set to path. Existing files are never
// overwritten. The result is validated against the manifest schema and any
// issues are returned as warnings.
func Generate(setName string, data *ScaffoldData, path string) (*Result, error) {
	tmplPath := "scaffolds/" + setName + "/listings.yaml.tmpl"
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found (available: %s): %w",
			setName, strings.Join(Templates(), ", "), err)
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%s already exists; remove it first", path)
	}

	tmpl, err := template.New(setName).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", setName, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", setName, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	result := &Result{Path: path}
	valResult, valErr := manifest.Validate(buf.Bytes())
	if valErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}
	return result, nil
}
