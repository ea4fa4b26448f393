package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/id"
	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

func TestBookService_CreateBook(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewBookService(env.store, env.index, env.validator, env.logger)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, CreateBookRequest{
		ISBN:        "978-0-13-419044-0",
		Title:       "  The Go   Programming Language ",
		Authors:     []string{"Alan Donovan", "Brian Kernighan", "Alan Donovan"},
		Description: "<p>An <strong>authoritative</strong> guide.</p>",
		Subjects:    []string{"Programming Languages", "Go", "programming languages"},
		PageCount:   380,
	})
	require.NoError(t, err)

	assert.True(t, id.HasPrefix(book.ID, id.PrefixBook))
	assert.Equal(t, "9780134190440", book.ISBN)
	assert.Equal(t, "The Go Programming Language", book.Title)
	assert.Equal(t, []string{"Alan Donovan", "Brian Kernighan"}, book.Authors)
	assert.Equal(t, []string{"programming-languages", "go"}, book.Subjects)
	assert.Contains(t, book.Description, "**authoritative**")
	assert.NotContains(t, book.Description, "<p>")

	stored, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, stored.Title)

	res, err := env.index.Search(ctx, search.Params{Query: "kernighan"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, book.ID, res.Hits[0].ID)
}

func TestBookService_CreateBook_Validation(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewBookService(env.store, env.index, env.validator, env.logger)

	tests := []struct {
		name string
		req  CreateBookRequest
	}{
		{"missing title", CreateBookRequest{Authors: []string{"A"}}},
		{"blank title", CreateBookRequest{Title: "   ", Authors: []string{"A"}}},
		{"no authors", CreateBookRequest{Title: "T"}},
		{"bad isbn", CreateBookRequest{Title: "T", Authors: []string{"A"}, ISBN: "12345"}},
		{"negative pages", CreateBookRequest{Title: "T", Authors: []string{"A"}, PageCount: -1}},
		{"bad cover url", CreateBookRequest{Title: "T", Authors: []string{"A"}, CoverURL: "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBook(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestBookService_CreateBook_DuplicateISBN(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewBookService(env.store, env.index, env.validator, env.logger)
	ctx := context.Background()

	req := CreateBookRequest{ISBN: "9780134190440", Title: "T", Authors: []string{"A"}}
	_, err := svc.CreateBook(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, req)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestBookService_UpdateBook(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewBookService(env.store, env.index, env.validator, env.logger)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, CreateBookRequest{Title: "Old Title", Authors: []string{"A"}, PageCount: 100})
	require.NoError(t, err)

	updated, err := svc.UpdateBook(ctx, book.ID, UpdateBookRequest{
		Title:    ptr("New Title"),
		Subjects: ptr([]string{"Distributed Systems"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, []string{"distributed-systems"}, updated.Subjects)
	assert.Equal(t, 100, updated.PageCount, "unset fields are kept")

	res, err := env.index.Search(ctx, search.Params{Query: "new title"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, book.ID, res.Hits[0].ID)

	_, err = svc.UpdateBook(ctx, "book-missing", UpdateBookRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBookService_ListBooks(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewBookService(env.store, nil, env.validator, env.logger)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.CreateBook(ctx, CreateBookRequest{Title: title, Authors: []string{"A"}})
		require.NoError(t, err)
	}

	page, err := svc.ListBooks(ctx, store.PaginationParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)

	rest, err := svc.ListBooks(ctx, store.PaginationParams{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1)
	assert.False(t, rest.HasMore)
}
