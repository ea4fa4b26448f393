package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

const reindexPageSize = 500

// SearchService searches the catalogue and keeps the index populated.
type SearchService struct {
	index  *search.Index
	books  store.BookStore
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, books store.BookStore, logger *slog.Logger) *SearchService {
	return &SearchService{index: index, books: books, logger: logger}
}

// Search runs a catalogue query.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// Reindex drops the index and rebuilds it from the store. It returns the
// number of books indexed.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	start := time.Now()

	if err := s.index.Rebuild(); err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	var (
		cursor string
		count  int
	)
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		page, err := s.books.ListBooks(ctx, store.PaginationParams{Limit: reindexPageSize, Cursor: cursor})
		if err != nil {
			return count, fmt.Errorf("list books: %w", err)
		}
		if err := s.index.IndexBooks(ctx, page.Items); err != nil {
			return count, fmt.Errorf("index books: %w", err)
		}
		count += len(page.Items)

		if !page.HasMore {
			break
		}
		cursor = page.NextCursor
	}

	s.logger.Info("search index rebuilt", "books", count, "duration", time.Since(start))
	return count, nil
}

// EnsureIndexed reindexes when the index holds fewer documents than the
// store has books, which happens after a mapping upgrade or a lost index.
func (s *SearchService) EnsureIndexed(ctx context.Context) error {
	indexed, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	ids, err := s.books.ListBookIDs(ctx)
	if err != nil {
		return fmt.Errorf("list book IDs: %w", err)
	}
	if indexed >= uint64(len(ids)) {
		return nil
	}

	s.logger.Info("search index out of date, reindexing", "indexed", indexed, "books", len(ids))
	_, err = s.Reindex(ctx)
	return err
}
