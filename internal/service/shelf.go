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

// ShelfRequest creates or renames a shelf.
type ShelfRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

// ShelfService manages reader shelves. Shelves are readable by anyone and
// writable only by their owner.
type ShelfService struct {
	shelves   store.ShelfStore
	books     store.BookStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewShelfService creates a new shelf service.
func NewShelfService(st store.Store, v *validation.Validator, logger *slog.Logger) *ShelfService {
	return &ShelfService{shelves: st, books: st, validator: v, logger: logger}
}

// CreateShelf creates an empty shelf owned by ownerID.
func (s *ShelfService) CreateShelf(ctx context.Context, ownerID string, req ShelfRequest) (*domain.Shelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	shelfID, err := id.Generate(id.PrefixShelf)
	if err != nil {
		return nil, fmt.Errorf("generate shelf ID: %w", err)
	}

	now := time.Now()
	shelf := &domain.Shelf{
		ID:          shelfID,
		OwnerID:     ownerID,
		Name:        normalize.Whitespace(req.Name),
		Description: req.Description,
		BookIDs:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.shelves.CreateShelf(ctx, shelf); err != nil {
		return nil, fmt.Errorf("create shelf: %w", err)
	}

	s.logger.Info("shelf created", "shelf_id", shelfID, "owner_id", ownerID, "name", shelf.Name)
	return shelf, nil
}

// GetShelf returns a shelf.
func (s *ShelfService) GetShelf(ctx context.Context, shelfID string) (*domain.Shelf, error) {
	return s.shelves.GetShelf(ctx, shelfID)
}

// ListMyShelves returns the shelves owned by userID.
func (s *ShelfService) ListMyShelves(ctx context.Context, userID string) ([]*domain.Shelf, error) {
	shelves, err := s.shelves.ListShelvesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	if shelves == nil {
		shelves = []*domain.Shelf{}
	}
	return shelves, nil
}

// UpdateShelf renames a shelf.
func (s *ShelfService) UpdateShelf(ctx context.Context, userID, shelfID string, req ShelfRequest) (*domain.Shelf, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	shelf, err := s.ownedShelf(ctx, userID, shelfID)
	if err != nil {
		return nil, err
	}

	shelf.Name = normalize.Whitespace(req.Name)
	shelf.Description = req.Description
	shelf.UpdatedAt = time.Now()

	if err := s.shelves.UpdateShelf(ctx, shelf); err != nil {
		return nil, fmt.Errorf("update shelf: %w", err)
	}

	s.logger.Info("shelf updated", "shelf_id", shelfID, "owner_id", userID)
	return shelf, nil
}

// DeleteShelf deletes a shelf.
func (s *ShelfService) DeleteShelf(ctx context.Context, userID, shelfID string) error {
	if _, err := s.ownedShelf(ctx, userID, shelfID); err != nil {
		return err
	}

	if err := s.shelves.DeleteShelf(ctx, shelfID); err != nil {
		return fmt.Errorf("delete shelf: %w", err)
	}

	s.logger.Info("shelf deleted", "shelf_id", shelfID, "owner_id", userID)
	return nil
}

// AddBook puts a book at the front of a shelf. Adding a book that is
// already shelved is a no-op.
func (s *ShelfService) AddBook(ctx context.Context, userID, shelfID, bookID string) (*domain.Shelf, error) {
	shelf, err := s.ownedShelf(ctx, userID, shelfID)
	if err != nil {
		return nil, err
	}

	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	if !shelf.AddBook(bookID) {
		return shelf, nil
	}
	shelf.UpdatedAt = time.Now()

	if err := s.shelves.UpdateShelf(ctx, shelf); err != nil {
		return nil, fmt.Errorf("add book to shelf: %w", err)
	}

	s.logger.Info("book added to shelf", "shelf_id", shelfID, "book_id", bookID)
	return shelf, nil
}

// RemoveBook takes a book off a shelf.
func (s *ShelfService) RemoveBook(ctx context.Context, userID, shelfID, bookID string) (*domain.Shelf, error) {
	shelf, err := s.ownedShelf(ctx, userID, shelfID)
	if err != nil {
		return nil, err
	}

	if !shelf.RemoveBook(bookID) {
		return nil, domainerrors.NotFound("book is not on this shelf")
	}
	shelf.UpdatedAt = time.Now()

	if err := s.shelves.UpdateShelf(ctx, shelf); err != nil {
		return nil, fmt.Errorf("remove book from shelf: %w", err)
	}

	s.logger.Info("book removed from shelf", "shelf_id", shelfID, "book_id", bookID)
	return shelf, nil
}

func (s *ShelfService) ownedShelf(ctx context.Context, userID, shelfID string) (*domain.Shelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shelf, err := s.shelves.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}
	if !shelf.IsOwnedBy(userID) {
		return nil, domainerrors.Forbidden("you do not own this shelf")
	}
	return shelf, nil
}
