package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// ErrLocked is returned by OpenBadger when another process holds the
// database directory.
var ErrLocked = errors.New("cache directory is locked by another process")

// Badger is a persistent Store backed by a badger database. Entries survive
// restarts, but the directory is owned by one process at a time: badger takes
// an exclusive lock on it for as long as the store is open.
type Badger struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBadger opens (or creates) a database in dir. An empty dir keeps the
// database in memory.
func OpenBadger(dir string, logger *slog.Logger) (*Badger, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		// badger flattens the flock error into text.
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, fmt.Errorf("opening badger cache %s: %w", dir, ErrLocked)
		}
		return nil, fmt.Errorf("opening badger cache %s: %w", dir, err)
	}
	return &Badger{db: db, logger: logger}, nil
}

func (b *Badger) Has(key string) bool {
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		b.logger.Warn("badger lookup failed", "key", key, "error", err)
	}
	return err == nil
}

func (b *Badger) Get(key string) ([]string, bool) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		b.logger.Warn("badger read failed", "key", key, "error", err)
		return nil, false
	}

	var v []string
	if err := json.Unmarshal(raw, &v); err != nil {
		b.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return nil, false
	}
	return copyList(v), true
}

func (b *Badger) Set(key string, value []string) error {
	raw, err := json.Marshal(copyList(value))
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

func (b *Badger) Clear(prefix string) error {
	var err error
	if prefix == "" {
		err = b.db.DropAll()
	} else {
		err = b.db.DropPrefix([]byte(prefix))
	}
	if err != nil {
		return fmt.Errorf("clearing cache prefix %q: %w", prefix, err)
	}
	return nil
}

func (b *Badger) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing badger cache: %w", err)
	}
	return nil
}

// badgerLogger routes badger's printf-style logging into slog.
type badgerLogger struct {
	l *slog.Logger
}

func (g badgerLogger) Errorf(f string, v ...interface{})   { g.l.Error(fmt.Sprintf(f, v...)) }
func (g badgerLogger) Warningf(f string, v ...interface{}) { g.l.Warn(fmt.Sprintf(f, v...)) }
func (g badgerLogger) Infof(f string, v ...interface{})    { g.l.Debug(fmt.Sprintf(f, v...)) }
func (g badgerLogger) Debugf(f string, v ...interface{})   { g.l.Debug(fmt.Sprintf(f, v...)) }
