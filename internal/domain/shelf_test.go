package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShelf_AddBook_PrependsNewestFirst(t *testing.T) {
	shelf := &Shelf{ID: "shelf-1", OwnerID: "user-1", BookIDs: []string{"book-1", "book-2"}}

	assert.True(t, shelf.AddBook("book-3"))
	assert.Equal(t, []string{"book-3", "book-1", "book-2"}, shelf.BookIDs)
}

func TestShelf_AddBook_IgnoresDuplicates(t *testing.T) {
	stamp := time.Now().Add(-time.Hour)
	shelf := &Shelf{BookIDs: []string{"book-1"}, UpdatedAt: stamp}

	assert.False(t, shelf.AddBook("book-1"))
	assert.Equal(t, []string{"book-1"}, shelf.BookIDs)
	assert.Equal(t, stamp, shelf.UpdatedAt)
}

func TestShelf_RemoveBook(t *testing.T) {
	stamp := time.Now().Add(-time.Hour)
	shelf := &Shelf{BookIDs: []string{"book-1", "book-2", "book-3"}, UpdatedAt: stamp}

	assert.True(t, shelf.RemoveBook("book-2"))
	assert.Equal(t, []string{"book-1", "book-3"}, shelf.BookIDs)
	assert.True(t, shelf.UpdatedAt.After(stamp))

	assert.False(t, shelf.RemoveBook("book-9"))
	assert.False(t, shelf.ContainsBook("book-2"))
	assert.True(t, shelf.ContainsBook("book-3"))
}

func TestShelf_IsOwnedBy(t *testing.T) {
	shelf := &Shelf{OwnerID: "user-1"}
	assert.True(t, shelf.IsOwnedBy("user-1"))
	assert.False(t, shelf.IsOwnedBy("user-2"))
}
