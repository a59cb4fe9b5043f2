// Package store keeps named board snapshots in BadgerDB.
//
// Each board is one JSON value under "board/<name>". The store only
// persists what the engine hands it; restoring a board goes back through
// engine.Restore.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/tworow/history"
)

const keyPrefix = "board/"

var (
	// ErrNotFound is returned for a board name that was never saved.
	ErrNotFound = errors.New("store: board not found")

	// ErrInvalidName is returned for an empty or unprintable board name.
	ErrInvalidName = errors.New("store: invalid board name")
)

// Config describes where the database lives.
type Config struct {
	// Path is the database directory. Required unless InMemory.
	Path string

	// InMemory keeps everything in RAM; used by tests and one-shot runs.
	InMemory bool

	SyncWrites bool

	// Logger receives badger's own log output. Nil silences it.
	Logger *slog.Logger
}

// DefaultConfig returns a persistent configuration at path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration that never touches disk.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Board is one saved board.
type Board struct {
	Name     string           `json:"name"`
	Level    string           `json:"level,omitempty"`
	SavedAt  time.Time        `json:"savedAt"`
	Snapshot history.Snapshot `json:"snapshot"`
}

// Store wraps an open badger database.
type Store struct {
	db *badger.DB
}

var validate = validator.New()

// Open opens (or creates) the database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store: path is required for a persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

func checkName(name string) error {
	if err := validate.Var(name, "required,max=128,printascii"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}

// Save writes b under b.Name, replacing any earlier board of that name.
// A zero SavedAt is set to now.
func (s *Store) Save(ctx context.Context, b Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(b.Name); err != nil {
		return err
	}
	if b.SavedAt.IsZero() {
		b.SavedAt = time.Now().UTC()
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("store: Save %q: %w", b.Name, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+b.Name), data)
	})
}

// Load reads the board called name.
func (s *Store) Load(ctx context.Context, name string) (Board, error) {
	if err := ctx.Err(); err != nil {
		return Board{}, err
	}
	if err := checkName(name); err != nil {
		return Board{}, err
	}
	var b Board
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &b)
		})
	})
	if err != nil {
		return Board{}, fmt.Errorf("store: Load: %w", err)
	}

	return b, nil
}

// List returns the saved board names in key order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: List: %w", err)
	}

	return names, nil
}

// Delete removes the board called name. Deleting a missing board returns
// ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(keyPrefix + name)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
