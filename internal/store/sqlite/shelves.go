package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// shelfColumns must match the scan order in scanShelf.
const shelfColumns = `id, created_at, updated_at, owner_id, name, description`

func scanShelf(scanner interface{ Scan(dest ...any) error }) (*domain.Shelf, error) {
	var (
		sh                   domain.Shelf
		createdAt, updatedAt string
		description          sql.NullString
	)
	err := scanner.Scan(&sh.ID, &createdAt, &updatedAt, &sh.OwnerID, &sh.Name, &description)
	if err != nil {
		return nil, err
	}
	if sh.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if sh.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	sh.Description = description.String
	return &sh, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func loadShelfBookIDs(ctx context.Context, q queryer, shelfID string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT book_id FROM shelf_books WHERE shelf_id = ? ORDER BY sort_order`, shelfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookIDs := []string{}
	for rows.Next() {
		var bookID string
		if err := rows.Scan(&bookID); err != nil {
			return nil, err
		}
		bookIDs = append(bookIDs, bookID)
	}
	return bookIDs, rows.Err()
}

// writeShelfBooks replaces the shelf's book rows; sort_order follows BookIDs.
func writeShelfBooks(ctx context.Context, q queryer, shelf *domain.Shelf) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM shelf_books WHERE shelf_id = ?`, shelf.ID); err != nil {
		return err
	}
	for i, bookID := range shelf.BookIDs {
		_, err := q.ExecContext(ctx,
			`INSERT INTO shelf_books (shelf_id, book_id, sort_order) VALUES (?, ?, ?)`,
			shelf.ID, bookID, i)
		if isForeignKeyViolation(err) {
			return store.ErrBookNotFound
		}
		if err != nil {
			return fmt.Errorf("insert shelf book %s: %w", bookID, err)
		}
	}
	return nil
}

// CreateShelf inserts a shelf and its books.
func (s *Store) CreateShelf(ctx context.Context, shelf *domain.Shelf) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO shelves (`+shelfColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		shelf.ID,
		formatTime(shelf.CreatedAt),
		formatTime(shelf.UpdatedAt),
		shelf.OwnerID,
		shelf.Name,
		nullString(shelf.Description),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage("shelf already exists")
	}
	if err != nil {
		return err
	}

	if err := writeShelfBooks(ctx, tx, shelf); err != nil {
		return err
	}
	return tx.Commit()
}

// GetShelf returns a shelf with its ordered book IDs.
func (s *Store) GetShelf(ctx context.Context, id string) (*domain.Shelf, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+shelfColumns+` FROM shelves WHERE id = ?`, id)

	sh, err := scanShelf(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrShelfNotFound
	}
	if err != nil {
		return nil, err
	}

	if sh.BookIDs, err = loadShelfBookIDs(ctx, s.db, id); err != nil {
		return nil, fmt.Errorf("load shelf book ids: %w", err)
	}
	return sh, nil
}

// UpdateShelf updates a shelf and replaces its book list in one transaction.
func (s *Store) UpdateShelf(ctx context.Context, shelf *domain.Shelf) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE shelves SET updated_at = ?, name = ?, description = ?
		WHERE id = ?`,
		formatTime(shelf.UpdatedAt),
		shelf.Name,
		nullString(shelf.Description),
		shelf.ID,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrShelfNotFound
	}

	if err := writeShelfBooks(ctx, tx, shelf); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteShelf hard-deletes a shelf; its book rows cascade.
func (s *Store) DeleteShelf(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM shelves WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrShelfNotFound
	}
	return nil
}

// ListShelvesByOwner returns a reader's shelves, oldest first.
func (s *Store) ListShelvesByOwner(ctx context.Context, ownerID string) ([]*domain.Shelf, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shelfColumns+` FROM shelves WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, err
	}

	var shelves []*domain.Shelf
	for rows.Next() {
		sh, err := scanShelf(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		shelves = append(shelves, sh)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	for _, sh := range shelves {
		if sh.BookIDs, err = loadShelfBookIDs(ctx, s.db, sh.ID); err != nil {
			return nil, fmt.Errorf("load shelf book ids for %s: %w", sh.ID, err)
		}
	}
	return shelves, nil
}

// ShelvedBookIDs returns the set of books on any of the owner's shelves.
func (s *Store) ShelvedBookIDs(ctx context.Context, ownerID string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT sb.book_id
		FROM shelf_books sb
		JOIN shelves s ON s.id = sb.shelf_id
		WHERE s.owner_id = ?`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}
