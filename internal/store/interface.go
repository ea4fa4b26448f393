// Package store defines the persistence interfaces for BookCircle.
package store

import (
	"context"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

// BookStore persists catalogue entries.
type BookStore interface {
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	ListBooks(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Book], error)
	ListBookIDs(ctx context.Context) ([]string, error)
}

// ReviewStore persists reader reviews. Every change to a book's reviews
// bumps that book's review set version.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	DeleteReview(ctx context.Context, id string) error
	ListReviewsForBook(ctx context.Context, bookID string) ([]*domain.Review, error)
	ListReviewsForBooks(ctx context.Context, bookIDs []string) (map[string][]*domain.Review, error)
	ReviewSetVersion(ctx context.Context, bookID string) (int64, error)
	ReviewSetVersions(ctx context.Context, bookIDs []string) (map[string]int64, error)
}

// ProfileStore persists reader profiles.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)
}

// ShelfStore persists shelves and their ordered books.
type ShelfStore interface {
	CreateShelf(ctx context.Context, shelf *domain.Shelf) error
	GetShelf(ctx context.Context, id string) (*domain.Shelf, error)
	UpdateShelf(ctx context.Context, shelf *domain.Shelf) error
	DeleteShelf(ctx context.Context, id string) error
	ListShelvesByOwner(ctx context.Context, ownerID string) ([]*domain.Shelf, error)
	ShelvedBookIDs(ctx context.Context, ownerID string) (map[string]struct{}, error)
}

// Store is the full persistence surface.
type Store interface {
	BookStore
	ReviewStore
	ProfileStore
	ShelfStore
	Ping(ctx context.Context) error
	Close() error
}
