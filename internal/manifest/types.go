package manifest

// Manifest is the top-level page-type manifest document.
type Manifest struct {
	SchemaVersion string     `yaml:"schema_version" json:"schema_version"`
	Root          string     `yaml:"root" json:"root"`
	Base          string     `yaml:"base,omitempty" json:"base,omitempty"`
	Types         []TypeSpec `yaml:"types" json:"types"`
}

// TypeSpec declares one page type.
type TypeSpec struct {
	Name                 string   `yaml:"name" json:"name"`
	Parent               string   `yaml:"parent,omitempty" json:"parent,omitempty"`
	Capabilities         []string `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
	ListedPagesClasses   []string `yaml:"listed_pages_classes,omitempty" json:"listed_pages_classes,omitempty"`
	ListedPagesIndexOnly *bool    `yaml:"listed_pages_index_only,omitempty" json:"listed_pages_index_only,omitempty"`
	CanBeRoot            bool     `yaml:"can_be_root,omitempty" json:"can_be_root,omitempty"`
	SingularName         string   `yaml:"singular_name,omitempty" json:"singular_name,omitempty"`
	PluralName           string   `yaml:"plural_name,omitempty" json:"plural_name,omitempty"`
}

// BaseType returns the type listings must descend from, defaulting to Root.
func (m *Manifest) BaseType() string {
	if m.Base != "" {
		return m.Base
	}
	return m.Root
}
