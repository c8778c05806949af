package cache

import (
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an unbounded in-process Store. Entries never expire; they live
// until cleared.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (m *Memory) Has(key string) bool {
	_, found := m.cache.Get(key)
	return found
}

func (m *Memory) Get(key string) ([]string, bool) {
	value, found := m.cache.Get(key)
	if !found {
		return nil, false
	}
	v, ok := value.([]string)
	if !ok {
		return nil, false
	}
	return copyList(v), true
}

func (m *Memory) Set(key string, value []string) error {
	m.cache.Set(key, copyList(value), gocache.NoExpiration)
	return nil
}

func (m *Memory) Clear(prefix string) error {
	if prefix == "" {
		m.cache.Flush()
		return nil
	}
	for key := range m.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			m.cache.Delete(key)
		}
	}
	return nil
}

func (m *Memory) Close() error { return nil }
