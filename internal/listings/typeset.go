package listings

import "encoding/json"

// TypeSet is an insertion-ordered, duplicate-free set of type names.
// The zero value is an empty set ready to use.
type TypeSet struct {
	names []string
	index map[string]struct{}
}

// NewTypeSet builds a set from names, dropping repeats.
func NewTypeSet(names ...string) TypeSet {
	var s TypeSet
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add appends name unless already present. It reports whether name was added.
func (s *TypeSet) Add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Contains reports whether name is a member.
func (s TypeSet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of members.
func (s TypeSet) Len() int { return len(s.names) }

// Names returns the members in insertion order.
func (s TypeSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Clone returns an independent copy of s.
func (s TypeSet) Clone() TypeSet {
	return NewTypeSet(s.names...)
}

// Union returns s followed by the members of o not already in s.
func (s TypeSet) Union(o TypeSet) TypeSet {
	out := s.Clone()
	for _, n := range o.names {
		out.Add(n)
	}
	return out
}

// IsSubsetOf reports whether every member of s is in o.
func (s TypeSet) IsSubsetOf(o TypeSet) bool {
	for _, n := range s.names {
		if !o.Contains(n) {
			return false
		}
	}
	return true
}

// Equal reports whether s and o hold the same members in the same order.
func (s TypeSet) Equal(o TypeSet) bool {
	if len(s.names) != len(o.names) {
		return false
	}
	for i := range s.names {
		if s.names[i] != o.names[i] {
			return false
		}
	}
	return true
}

func (s TypeSet) MarshalJSON() ([]byte, error) {
	if s.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.names)
}
