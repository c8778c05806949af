package hierarchy

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownType is returned when a referenced type is not in the tree.
	ErrUnknownType = errors.New("unknown type")
	// ErrDuplicateType is returned when registering a name twice.
	ErrDuplicateType = errors.New("duplicate type")
)

// Hierarchy is the read-only view of the page-type tree used by registries.
// Every method reflects the live state of the tree at call time.
type Hierarchy interface {
	// Root returns the name of the designated root type.
	Root() string
	Exists(name string) bool
	Lookup(name string) (Type, bool)
	// Ancestry returns the chain from the root down to name, inclusive.
	// It returns nil for unknown types.
	Ancestry(name string) []string
	// SubclassesOf returns every transitive descendant of name in
	// depth-first pre-order, excluding name itself.
	SubclassesOf(name string) []string
	// HasCapability reports whether name or any of its ancestors declares c.
	HasCapability(name string, c Capability) bool
	// Names returns every type in depth-first pre-order from the root.
	Names() []string
}

// Tree is a mutable, concurrency-safe Hierarchy.
type Tree struct {
	mu       sync.RWMutex
	root     string
	types    map[string]Type
	children map[string][]string
}

var _ Hierarchy = (*Tree)(nil)

// NewTree creates a tree containing only root.
func NewTree(root Type) (*Tree, error) {
	if root.Name == "" {
		return nil, fmt.Errorf("root type must have a name")
	}
	if root.Parent != "" {
		return nil, fmt.Errorf("root type %s cannot have parent %s", root.Name, root.Parent)
	}
	return &Tree{
		root:     root.Name,
		types:    map[string]Type{root.Name: root.clone()},
		children: make(map[string][]string),
	}, nil
}

// Register adds t under its parent. The parent must already exist.
func (tr *Tree) Register(t Type) error {
	if t.Name == "" {
		return fmt.Errorf("registering type: name is empty")
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	if _, ok := tr.types[t.Name]; ok {
		return fmt.Errorf("registering %s: %w", t.Name, ErrDuplicateType)
	}
	if t.Parent == "" {
		return fmt.Errorf("registering %s: parent is required below root %s", t.Name, tr.root)
	}
	if _, ok := tr.types[t.Parent]; !ok {
		return fmt.Errorf("registering %s under %s: %w", t.Name, t.Parent, ErrUnknownType)
	}

	tr.types[t.Name] = t.clone()
	tr.children[t.Parent] = append(tr.children[t.Parent], t.Name)
	return nil
}

// Remove deletes a leaf type. Types with subclasses and the root cannot be removed.
func (tr *Tree) Remove(name string) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	t, ok := tr.types[name]
	if !ok {
		return fmt.Errorf("removing %s: %w", name, ErrUnknownType)
	}
	if name == tr.root {
		return fmt.Errorf("removing %s: cannot remove the root type", name)
	}
	if len(tr.children[name]) > 0 {
		return fmt.Errorf("removing %s: type has %d subclasses", name, len(tr.children[name]))
	}

	siblings := tr.children[t.Parent]
	for i, s := range siblings {
		if s == name {
			tr.children[t.Parent] = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	delete(tr.children, name)
	delete(tr.types, name)
	return nil
}

// Replace swaps the contents of tr for a copy of other.
func (tr *Tree) Replace(other *Tree) {
	other.mu.RLock()
	types := make(map[string]Type, len(other.types))
	for k, v := range other.types {
		types[k] = v.clone()
	}
	children := make(map[string][]string, len(other.children))
	for k, v := range other.children {
		children[k] = append([]string(nil), v...)
	}
	root := other.root
	other.mu.RUnlock()

	tr.mu.Lock()
	tr.root = root
	tr.types = types
	tr.children = children
	tr.mu.Unlock()
}

// Len returns the number of types, root included.
func (tr *Tree) Len() int {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return len(tr.types)
}

// Root returns the name of the root type.
func (tr *Tree) Root() string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.root
}

// Exists reports whether name is registered.
func (tr *Tree) Exists(name string) bool {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	_, ok := tr.types[name]
	return ok
}

// Lookup returns a copy of the type registered as name.
func (tr *Tree) Lookup(name string) (Type, bool) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	t, ok := tr.types[name]
	if !ok {
		return Type{}, false
	}
	return t.clone(), true
}

// Ancestry returns the chain from the root down to name, inclusive.
// It is nil when name is unknown.
func (tr *Tree) Ancestry(name string) []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.ancestry(name)
}

func (tr *Tree) ancestry(name string) []string {
	var chain []string
	for cur := name; cur != ""; {
		t, ok := tr.types[cur]
		if !ok {
			return nil
		}
		chain = append(chain, cur)
		cur = t.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// SubclassesOf returns every transitive subclass of name in depth-first
// pre-order, excluding name itself.
func (tr *Tree) SubclassesOf(name string) []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	if _, ok := tr.types[name]; !ok {
		return nil
	}
	var out []string
	tr.walk(name, func(n string) { out = append(out, n) })
	return out
}

// HasCapability reports whether name or one of its ancestors declares c.
func (tr *Tree) HasCapability(name string, c Capability) bool {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	for _, n := range tr.ancestry(name) {
		if tr.types[n].Declares(c) {
			return true
		}
	}
	return false
}

// Names returns every registered type, root first.
func (tr *Tree) Names() []string {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	out := []string{tr.root}
	tr.walk(tr.root, func(n string) { out = append(out, n) })
	return out
}

// walk visits the descendants of name in depth-first pre-order.
func (tr *Tree) walk(name string, visit func(string)) {
	for _, child := range tr.children[name] {
		visit(child)
		tr.walk(child, visit)
	}
}

// EffectiveListings resolves the association data of name. Each setting is
// inherited on its own: Classes merges the lists declared along the ancestry,
// root first and without repeats, while IndexOnly comes from the nearest type
// that sets it. The returned IndexOnly is never nil.
func EffectiveListings(h Hierarchy, name string) Listings {
	var (
		out       Listings
		indexOnly bool
		seen      = make(map[string]struct{})
	)
	for _, n := range h.Ancestry(name) {
		t, ok := h.Lookup(n)
		if !ok {
			continue
		}
		for _, c := range t.Listings.Classes {
			if _, dup := seen[c]; !dup {
				seen[c] = struct{}{}
				out.Classes = append(out.Classes, c)
			}
		}
		if t.Listings.IndexOnly != nil {
			indexOnly = *t.Listings.IndexOnly
		}
	}
	out.IndexOnly = &indexOnly
	return out
}
