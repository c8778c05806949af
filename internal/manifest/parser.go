package manifest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/listings-labs/listings/internal/hierarchy"
)

// Parse reads a manifest file without schema validation.
func Parse(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseBytes(data, path)
}

// Load reads, validates and builds the manifest at path. The returned data
// is the raw file content, useful for fingerprinting.
func Load(path string) (*Manifest, *hierarchy.Tree, []byte, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	m, tree, err := LoadBytes(data, path)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, tree, data, nil
}

// LoadBytes validates and builds a manifest held in memory. path is only
// used in error messages.
func LoadBytes(data []byte, path string) (*Manifest, *hierarchy.Tree, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, nil, &SchemaError{Path: path, Issues: result.Issues}
	}

	m, err := parseBytes(data, path)
	if err != nil {
		return nil, nil, err
	}
	if err := CheckVersion(m.SchemaVersion); err != nil {
		return nil, nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	tree, err := Build(m)
	if err != nil {
		return nil, nil, fmt.Errorf("building hierarchy from %s: %w", path, err)
	}
	return m, tree, nil
}

// Build turns m into a hierarchy tree. Types may be listed in any order;
// parents are registered before their children. Unknown parents, cycles,
// unknown capabilities and associations naming undeclared types are errors.
func Build(m *Manifest) (*hierarchy.Tree, error) {
	rootType := hierarchy.Type{Name: m.Root}
	declared := map[string]bool{m.Root: true}
	var pending []hierarchy.Type

	for _, spec := range m.Types {
		t, err := toType(spec)
		if err != nil {
			return nil, err
		}
		if spec.Name == m.Root {
			if spec.Parent != "" {
				return nil, fmt.Errorf("root type %s cannot declare parent %s", spec.Name, spec.Parent)
			}
			rootType = t
			continue
		}
		if declared[spec.Name] {
			return nil, fmt.Errorf("type %s: %w", spec.Name, hierarchy.ErrDuplicateType)
		}
		declared[spec.Name] = true
		pending = append(pending, t)
	}

	for _, t := range append([]hierarchy.Type{rootType}, pending...) {
		for _, c := range t.Listings.Classes {
			if !declared[c] {
				return nil, fmt.Errorf("type %s manages %s: %w", t.Name, c, hierarchy.ErrUnknownType)
			}
		}
	}
	if !declared[m.BaseType()] {
		return nil, fmt.Errorf("base type %s: %w", m.BaseType(), hierarchy.ErrUnknownType)
	}

	tree, err := hierarchy.NewTree(rootType)
	if err != nil {
		return nil, err
	}

	for len(pending) > 0 {
		var next []hierarchy.Type
		for _, t := range pending {
			if !tree.Exists(t.Parent) {
				next = append(next, t)
				continue
			}
			if err := tree.Register(t); err != nil {
				return nil, err
			}
		}
		if len(next) == len(pending) {
			return nil, unresolvedError(next, declared)
		}
		pending = next
	}
	return tree, nil
}

func toType(spec TypeSpec) (hierarchy.Type, error) {
	t := hierarchy.Type{
		Name:      spec.Name,
		Parent:    spec.Parent,
		CanBeRoot: spec.CanBeRoot,
		Singular:  spec.SingularName,
		Plural:    spec.PluralName,
		Listings: hierarchy.Listings{
			Classes:   spec.ListedPagesClasses,
			IndexOnly: spec.ListedPagesIndexOnly,
		},
	}
	for _, raw := range spec.Capabilities {
		c, ok := hierarchy.ParseCapability(raw)
		if !ok {
			return hierarchy.Type{}, fmt.Errorf("type %s: unknown capability %q", spec.Name, raw)
		}
		t.Capabilities = append(t.Capabilities, c)
	}
	return t, nil
}

// unresolvedError explains why the remaining types could not be attached.
func unresolvedError(remaining []hierarchy.Type, declared map[string]bool) error {
	var orphans, cyclic []string
	for _, t := range remaining {
		if !declared[t.Parent] {
			orphans = append(orphans, t.Name+" (parent "+t.Parent+")")
		} else {
			cyclic = append(cyclic, t.Name)
		}
	}
	if len(orphans) > 0 {
		return fmt.Errorf("types with undeclared parents: %s: %w", strings.Join(orphans, ", "), hierarchy.ErrUnknownType)
	}
	return fmt.Errorf("types form a parent cycle: %s", strings.Join(cyclic, ", "))
}

func parseBytes(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
