package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/id"
	"github.com/bookcircle/bookcircle-server/internal/normalize"
	"github.com/bookcircle/bookcircle-server/internal/store"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// BookIndexer keeps the search index in step with the catalogue.
type BookIndexer interface {
	IndexBook(ctx context.Context, book *domain.Book) error
}

// CreateBookRequest is the intake form for a catalogue entry.
type CreateBookRequest struct {
	ISBN        string   `json:"isbn,omitempty" validate:"omitempty,isbn"`
	Title       string   `json:"title" validate:"required,notblank,max=500"`
	Authors     []string `json:"authors" validate:"required,min=1,max=20,dive,notblank,max=200"`
	Description string   `json:"description,omitempty" validate:"max=20000"`
	Subjects    []string `json:"subjects,omitempty" validate:"max=30,dive,notblank,max=100"`
	CoverURL    string   `json:"cover_url,omitempty" validate:"omitempty,http_url"`
	PageCount   int      `json:"page_count,omitempty" validate:"gte=0,lte=100000"`
}

// UpdateBookRequest changes only the fields that are set.
type UpdateBookRequest struct {
	ISBN        *string   `json:"isbn,omitempty" validate:"omitempty,isbn"`
	Title       *string   `json:"title,omitempty" validate:"omitempty,notblank,max=500"`
	Authors     *[]string `json:"authors,omitempty" validate:"omitempty,min=1,max=20,dive,notblank,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=20000"`
	Subjects    *[]string `json:"subjects,omitempty" validate:"omitempty,max=30,dive,notblank,max=100"`
	CoverURL    *string   `json:"cover_url,omitempty" validate:"omitempty,http_url"`
	PageCount   *int      `json:"page_count,omitempty" validate:"omitempty,gte=0,lte=100000"`
}

// BookService manages the catalogue.
type BookService struct {
	store     store.BookStore
	indexer   BookIndexer
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(s store.BookStore, indexer BookIndexer, v *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{store: s, indexer: indexer, validator: v, logger: logger}
}

// CreateBook validates, normalizes and stores a new book, then indexes it.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	now := time.Now()
	book := &domain.Book{
		ID:          bookID,
		ISBN:        normalize.ISBN(req.ISBN),
		Title:       normalize.Whitespace(req.Title),
		Authors:     normalize.Authors(req.Authors),
		Description: normalize.Description(req.Description),
		Subjects:    normalize.Subjects(req.Subjects),
		CoverURL:    req.CoverURL,
		PageCount:   req.PageCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("a book with this ISBN already exists")
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	s.index(ctx, book)
	return book, nil
}

// GetBook returns a book by ID.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.store.GetBook(ctx, bookID)
}

// ListBooks pages through the catalogue.
func (s *BookService) ListBooks(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Book], error) {
	return s.store.ListBooks(ctx, params)
}

// UpdateBook applies a partial update and reindexes the book.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.ISBN != nil {
		book.ISBN = normalize.ISBN(*req.ISBN)
	}
	if req.Title != nil {
		book.Title = normalize.Whitespace(*req.Title)
	}
	if req.Authors != nil {
		book.Authors = normalize.Authors(*req.Authors)
	}
	if req.Description != nil {
		book.Description = normalize.Description(*req.Description)
	}
	if req.Subjects != nil {
		book.Subjects = normalize.Subjects(*req.Subjects)
	}
	if req.CoverURL != nil {
		book.CoverURL = *req.CoverURL
	}
	if req.PageCount != nil {
		book.PageCount = *req.PageCount
	}
	book.UpdatedAt = time.Now()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("a book with this ISBN already exists")
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated", "book_id", book.ID)
	s.index(ctx, book)
	return book, nil
}

// index failures leave the book searchable after the next reindex.
func (s *BookService) index(ctx context.Context, book *domain.Book) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexBook(ctx, book); err != nil {
		s.logger.Warn("failed to index book", "book_id", book.ID, "error", err)
	}
}
