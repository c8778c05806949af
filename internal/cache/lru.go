package cache

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a bounded in-process Store. When full, the least recently used
// entry is evicted and will be recomputed by its registry on next read.
type LRU struct {
	cache *lru.Cache[string, []string]
}

// NewLRU creates a store holding at most size entries.
func NewLRU(size int) (*LRU, error) {
	c, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	return &LRU{cache: c}, nil
}

func (l *LRU) Has(key string) bool {
	return l.cache.Contains(key)
}

func (l *LRU) Get(key string) ([]string, bool) {
	v, ok := l.cache.Get(key)
	if !ok {
		return nil, false
	}
	return copyList(v), true
}

func (l *LRU) Set(key string, value []string) error {
	l.cache.Add(key, copyList(value))
	return nil
}

func (l *LRU) Clear(prefix string) error {
	if prefix == "" {
		l.cache.Purge()
		return nil
	}
	for _, key := range l.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			l.cache.Remove(key)
		}
	}
	return nil
}

func (l *LRU) Close() error { return nil }
