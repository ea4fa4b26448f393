// Package cache memoizes recommendation scores. Keys embed the book's review
// set version, so a new or deleted review makes old entries unreachable even
// before they expire.
package cache

import (
	"context"
	"strconv"

	"github.com/bookcircle/bookcircle-server/internal/recommend"
)

// Key identifies one scoring result. Scores depend on the reader only
// through their experience level.
type Key struct {
	BookID  string
	Version int64
	Level   recommend.Level
}

func (k Key) String() string {
	return bookPrefix(k.BookID) + strconv.FormatInt(k.Version, 10) + ":" + k.Level.String()
}

func bookPrefix(bookID string) string {
	return "score:" + bookID + ":"
}

// Entry is a cached outcome. NoData entries record that the book had no
// reviews at that version.
type Entry struct {
	Score  recommend.Score `json:"score"`
	Level  recommend.Level `json:"level"`
	NoData bool            `json:"no_data,omitempty"`
}

// Cache stores scoring outcomes.
type Cache interface {
	Get(ctx context.Context, key Key) (Entry, bool, error)
	Put(ctx context.Context, key Key, entry Entry) error
	InvalidateBook(ctx context.Context, bookID string) error
	Close() error
}

// Noop is the cache used when score caching is disabled.
type Noop struct{}

var _ Cache = Noop{}

// Get always misses.
func (Noop) Get(context.Context, Key) (Entry, bool, error) { return Entry{}, false, nil }

// Put discards the entry.
func (Noop) Put(context.Context, Key, Entry) error { return nil }

// InvalidateBook is a no-op.
func (Noop) InvalidateBook(context.Context, string) error { return nil }

// Close is a no-op.
func (Noop) Close() error { return nil }
