package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Badger is an in-memory Badger database holding scores with a TTL.
type Badger struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

var _ Cache = (*Badger)(nil)

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// NewBadger opens an in-memory score cache. Entries live for ttl.
func NewBadger(ttl time.Duration, logger *slog.Logger) (*Badger, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open score cache: %w", err)
	}

	logger.Info("score cache ready", "ttl", ttl)
	return &Badger{db: db, ttl: ttl, logger: logger}, nil
}

// Get returns the entry for key, if present and not expired.
func (c *Badger) Get(_ context.Context, key Key) (Entry, bool, error) {
	var entry Entry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key.String()))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		c.misses.Add(1)
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("read cached score %s: %w", key, err)
	}

	entry.Score.UserLevel = entry.Level
	c.hits.Add(1)
	return entry, true, nil
}

// Put stores entry under key with the cache TTL.
func (c *Badger) Put(_ context.Context, key Key, entry Entry) error {
	entry.Level = entry.Score.UserLevel
	if entry.NoData {
		entry.Level = key.Level
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cached score: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key.String()), data).WithTTL(c.ttl))
	})
}

// InvalidateBook removes every cached score for bookID.
func (c *Badger) InvalidateBook(_ context.Context, bookID string) error {
	prefix := []byte(bookPrefix(bookID))

	var keys [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan cached scores for %s: %w", bookID, err)
	}
	if len(keys) == 0 {
		return nil
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate cached scores for %s: %w", bookID, err)
	}

	c.logger.Debug("score cache invalidated", "book_id", bookID, "entries", len(keys))
	return nil
}

// Stats returns hit and miss counts since the cache opened.
func (c *Badger) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Close releases the cache.
func (c *Badger) Close() error {
	return c.db.Close()
}
