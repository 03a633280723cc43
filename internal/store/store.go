// Package store persists proof snapshots in BadgerDB, keyed by session
// id. The in-memory mode backs tests and ephemeral servers; everything
// else is a directory on disk.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/fitchkit/fitch/internal/proof"
)

// ErrNotFound is returned when no snapshot exists under the given id.
var ErrNotFound = errors.New("store: proof not found")

const keyPrefix = "proof/"

// Config holds the store settings. Path is required unless InMemory is
// set.
type Config struct {
	Path       string
	InMemory   bool
	SyncWrites bool
	Logger     *slog.Logger
}

// Store wraps one Badger database of proof snapshots.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Entry is one row of a listing: the id plus the cheap snapshot fields.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status"`
}

// NewID mints a session id.
func NewID() string {
	return uuid.NewString()
}

// Open opens or creates the database. Badger's own logging is routed to
// the configured slog logger, or silenced when none is given.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store: path required for a persistent store")
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
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&slogBridge{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes a snapshot under the id, overwriting any previous version.
func (s *Store) Save(ctx context.Context, id string, snap *proof.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: encode proof %s: %w", id, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(id), data)
	})
	if err != nil {
		return fmt.Errorf("store: save proof %s: %w", id, err)
	}
	s.logger.Debug("proof saved", "id", id, "bytes", len(data))
	return nil
}

// Load reads the snapshot stored under the id.
func (s *Store) Load(ctx context.Context, id string) (*proof.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load proof %s: %w", id, err)
	}

	var snap proof.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("store: decode proof %s: %w", id, err)
	}
	return &snap, nil
}

// List returns every stored proof in key order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := strings.TrimPrefix(string(item.Key()), keyPrefix)
			var snap proof.Snapshot
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &snap)
			}); err != nil {
				return fmt.Errorf("decode proof %s: %w", id, err)
			}
			entries = append(entries, Entry{ID: id, Name: snap.Name, Status: snap.Status})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list proofs: %w", err)
	}
	return entries, nil
}

// Delete removes the snapshot stored under the id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(id)); err != nil {
			return err
		}
		return txn.Delete(key(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: delete proof %s: %w", id, err)
	}
	s.logger.Debug("proof deleted", "id", id)
	return nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// slogBridge adapts slog to Badger's printf-style logger.
type slogBridge struct {
	logger *slog.Logger
}

func (b *slogBridge) Errorf(format string, args ...interface{}) {
	b.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *slogBridge) Warningf(format string, args ...interface{}) {
	b.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *slogBridge) Infof(format string, args ...interface{}) {
	b.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *slogBridge) Debugf(format string, args ...interface{}) {
	b.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
