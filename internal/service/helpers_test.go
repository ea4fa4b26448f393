package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookcircle/bookcircle-server/internal/cache"
	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/store/sqlite"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

type testEnv struct {
	store     *sqlite.Store
	index     *search.Index
	cache     *cache.Badger
	validator *validation.Validator
	logger    *slog.Logger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	idx, err := search.Open(search.Options{Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	c, err := cache.NewBadger(time.Minute, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return &testEnv{
		store:     st,
		index:     idx,
		cache:     c,
		validator: validation.New(),
		logger:    logger,
	}
}

func (e *testEnv) addBook(t *testing.T, id, title string) *domain.Book {
	t.Helper()
	now := time.Now()
	b := &domain.Book{
		ID:        id,
		Title:     title,
		Authors:   []string{"Test Author"},
		Subjects:  []string{"testing"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.store.CreateBook(context.Background(), b))
	return b
}

func (e *testEnv) addReview(t *testing.T, bookID, userID string, difficulty int, years float64) *domain.Review {
	t.Helper()
	r := &domain.Review{
		ID:              "rev-" + bookID + "-" + userID,
		BookID:          bookID,
		UserID:          userID,
		Difficulty:      difficulty,
		ExperienceYears: years,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, e.store.CreateReview(context.Background(), r))
	return r
}

func (e *testEnv) setYears(t *testing.T, userID string, years float64) {
	t.Helper()
	require.NoError(t, e.store.UpsertProfile(context.Background(), &domain.Profile{
		UserID:          userID,
		ExperienceYears: years,
		UpdatedAt:       time.Now(),
	}))
}

func ptr[T any](v T) *T { return &v }
