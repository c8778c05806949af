package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/listings-labs/listings/internal/cache"
	"github.com/listings-labs/listings/internal/config"
	"github.com/listings-labs/listings/internal/hierarchy"
	"github.com/listings-labs/listings/internal/listings"
	"github.com/listings-labs/listings/internal/manifest"
)

// fingerprintKey records which manifest the cache contents were built from.
const fingerprintKey = "ListingsManifest-Fingerprint"

// session is the loaded manifest together with the registries built on it.
type session struct {
	path     string
	manifest *manifest.Manifest
	tree     *hierarchy.Tree
	store    cache.Store
	set      *listings.Set
}

// openSession loads the configured manifest and opens the configured cache.
// A cache built from a different manifest is discarded.
func openSession() (*session, error) {
	path := viper.GetString(config.KeyManifest)
	m, tree, data, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	cfg := config.CacheConfig()
	cfg.Logger = logger
	store, err := cache.Open(cfg)
	if errors.Is(err, cache.ErrLocked) {
		return nil, fmt.Errorf("cache directory %s is in use by another listings process; "+
			"stop it (e.g. a running `listings watch`) or pass --cache memory: %w", cfg.Dir, err)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s cache: %w", cfg.Backend, err)
	}

	s := &session{path: path, manifest: m, tree: tree, store: store}
	if err := s.syncFingerprint(data); err != nil {
		_ = store.Close()
		return nil, err
	}
	s.set = listings.NewSet(tree, store,
		listings.WithBaseType(m.BaseType()),
		listings.WithLogger(logger),
	)
	return s, nil
}

func (s *session) syncFingerprint(data []byte) error {
	cleared, err := cache.EnsureFingerprint(s.store, fingerprintKey, cache.Sum(data))
	if err != nil {
		return fmt.Errorf("checking cache fingerprint: %w", err)
	}
	if cleared {
		logger.Debug("cache reset for manifest", "path", s.path)
	}
	return nil
}

// reload re-reads the manifest into the live tree and rebuilds every
// registry. On error the previous tree stays in place.
func (s *session) reload() error {
	m, tree, data, err := manifest.Load(s.path)
	if err != nil {
		return err
	}
	s.tree.Replace(tree)
	if m.BaseType() != s.manifest.BaseType() {
		s.set = listings.NewSet(s.tree, s.store,
			listings.WithBaseType(m.BaseType()),
			listings.WithLogger(logger),
		)
	}
	s.manifest = m
	if err := s.syncFingerprint(data); err != nil {
		return err
	}
	return s.set.FlushAll()
}

// registry resolves a --registry flag value.
func (s *session) registry(name string) (*listings.Registry, error) {
	kind, ok := listings.ParseKind(name)
	if !ok {
		return nil, fmt.Errorf("unknown registry %q (want listed, roots or indexes)", name)
	}
	return s.set.Get(kind)
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}
