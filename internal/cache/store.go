package cache

import (
	"fmt"
	"log/slog"
	"strings"
)

// Store is a process-wide cache of type-name lists.
// Set is last-writer-wins; no multi-key transactions are offered.
type Store interface {
	Has(key string) bool
	// Get returns a copy of the stored list.
	Get(key string) ([]string, bool)
	Set(key string, value []string) error
	// Clear removes every key starting with prefix. An empty prefix clears the store.
	Clear(prefix string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendLRU    = "lru"
	BackendBadger = "badger"
)

// DefaultLRUSize is the capacity used when Config.Size is not positive.
const DefaultLRUSize = 256

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string // badger directory; empty keeps badger in memory
	Size    int    // lru capacity
	Logger  *slog.Logger
}

// Open creates the Store named by cfg.Backend.
func Open(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendLRU:
		size := cfg.Size
		if size <= 0 {
			size = DefaultLRUSize
		}
		l, err := NewLRU(size)
		if err != nil {
			return nil, err
		}
		return l, nil
	case BackendBadger:
		b, err := OpenBadger(cfg.Dir, cfg.Logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want %s, %s or %s)",
			cfg.Backend, BackendMemory, BackendLRU, BackendBadger)
	}
}

func copyList(v []string) []string {
	if v == nil {
		return []string{}
	}
	return append([]string(nil), v...)
}
