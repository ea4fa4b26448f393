package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// bookColumns must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, isbn, title, description, cover_url, authors, subjects, page_count`

func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var (
		b                    domain.Book
		createdAt, updatedAt string
		isbn, desc, cover    sql.NullString
		authors, subjects    string
	)

	err := scanner.Scan(&b.ID, &createdAt, &updatedAt, &isbn, &b.Title, &desc, &cover, &authors, &subjects, &b.PageCount)
	if err != nil {
		return nil, err
	}

	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if b.Authors, err = decodeList(authors); err != nil {
		return nil, err
	}
	if b.Subjects, err = decodeList(subjects); err != nil {
		return nil, err
	}
	b.ISBN = isbn.String
	b.Description = desc.String
	b.CoverURL = cover.String

	return &b, nil
}

// CreateBook inserts a book. Duplicate IDs or ISBNs return store.ErrAlreadyExists.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		nullString(book.ISBN),
		book.Title,
		nullString(book.Description),
		nullString(book.CoverURL),
		encodeList(book.Authors),
		encodeList(book.Subjects),
		book.PageCount,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage("book already exists")
	}
	return err
}

// GetBook returns store.ErrBookNotFound when no book has id.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}
	return b, nil
}

// GetBooksByIDs returns the books that exist among ids, in no particular order.
func (s *Store) GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error) {
	var books []*domain.Book
	for _, part := range chunk(ids, sqliteMaxParams) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+bookColumns+` FROM books WHERE id IN (`+placeholders(len(part))+`)`,
			stringArgs(part)...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			b, err := scanBook(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			books = append(books, b)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return books, nil
}

// UpdateBook replaces a book's catalogue fields.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			updated_at = ?,
			isbn = ?,
			title = ?,
			description = ?,
			cover_url = ?,
			authors = ?,
			subjects = ?,
			page_count = ?
		WHERE id = ?`,
		formatTime(book.UpdatedAt),
		nullString(book.ISBN),
		book.Title,
		nullString(book.Description),
		nullString(book.CoverURL),
		encodeList(book.Authors),
		encodeList(book.Subjects),
		book.PageCount,
		book.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage("isbn already used by another book")
	}
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// ListBooks pages through books ordered by creation time then ID.
// The cursor format is "created_at|id".
func (s *Store) ListBooks(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Book], error) {
	params.Validate()

	var cursorTime, cursorID string
	if params.Cursor != "" {
		parts, err := store.DecodeCursor(params.Cursor, 2)
		if err != nil {
			return nil, err
		}
		cursorTime, cursorID = parts[0], parts[1]
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, err
	}

	var (
		rows *sql.Rows
		err  error
	)
	if cursorTime == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+bookColumns+` FROM books
			ORDER BY created_at ASC, id ASC
			LIMIT ?`, params.Limit+1)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+bookColumns+` FROM books
			WHERE (created_at > ? OR (created_at = ? AND id > ?))
			ORDER BY created_at ASC, id ASC
			LIMIT ?`, cursorTime, cursorTime, cursorID, params.Limit+1)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]*domain.Book, 0, params.Limit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &store.PaginatedResult[*domain.Book]{Total: total}
	if len(books) > params.Limit {
		books = books[:params.Limit]
		last := books[len(books)-1]
		result.HasMore = true
		result.NextCursor = store.EncodeCursor(formatTime(last.CreatedAt), last.ID)
	}
	result.Items = books
	return result, nil
}

// ListBookIDs returns every book ID.
func (s *Store) ListBookIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
