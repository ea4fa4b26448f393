package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcircle/bookcircle-server/internal/search"
)

func TestSearchService_ReindexFromStore(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSearchService(env.index, env.store, env.logger)
	ctx := context.Background()

	env.addBook(t, "book-1", "Dune")
	env.addBook(t, "book-2", "Emma")
	env.addBook(t, "book-3", "Middlemarch")

	res, err := svc.Search(ctx, search.Params{Query: "dune"})
	require.NoError(t, err)
	assert.Zero(t, res.Total, "books added straight to the store are not indexed")

	n, err := svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	res, err = svc.Search(ctx, search.Params{Query: "dune"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "book-1", res.Hits[0].ID)

	count, err := env.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchService_EnsureIndexed(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSearchService(env.index, env.store, env.logger)
	ctx := context.Background()

	require.NoError(t, svc.EnsureIndexed(ctx), "empty store needs nothing")

	env.addBook(t, "book-1", "Dune")
	require.NoError(t, svc.EnsureIndexed(ctx))

	count, err := env.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
