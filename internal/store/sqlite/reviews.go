package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

const reviewColumns = `id, created_at, book_id, user_id, difficulty, experience_years, body`

func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var (
		r         domain.Review
		createdAt string
		body      sql.NullString
	)
	err := scanner.Scan(&r.ID, &createdAt, &r.BookID, &r.UserID, &r.Difficulty, &r.ExperienceYears, &body)
	if err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	r.Body = body.String
	return &r, nil
}

// bumpReviewRevision advances the book's review set version inside tx.
func bumpReviewRevision(ctx context.Context, tx *sql.Tx, bookID string) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE books SET review_revision = review_revision + 1 WHERE id = ?`, bookID)
	if err != nil {
		return fmt.Errorf("bump review revision: %w", err)
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

// CreateReview inserts a review and bumps the book's review set version.
// A reader may review a book once; a second review returns
// store.ErrAlreadyExists. Reviews of unknown books return store.ErrBookNotFound.
func (s *Store) CreateReview(ctx context.Context, review *domain.Review) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reviews (`+reviewColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ID,
		formatTime(review.CreatedAt),
		review.BookID,
		review.UserID,
		review.Difficulty,
		review.ExperienceYears,
		nullString(review.Body),
	)
	switch {
	case isUniqueViolation(err):
		return store.ErrAlreadyExists.WithMessage("review already exists")
	case isForeignKeyViolation(err):
		return store.ErrBookNotFound
	case err != nil:
		return fmt.Errorf("insert review: %w", err)
	}

	if err := bumpReviewRevision(ctx, tx, review.BookID); err != nil {
		return err
	}
	return tx.Commit()
}

// GetReview returns store.ErrReviewNotFound when no review has id.
func (s *Store) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)
	r, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review %s: %w", id, err)
	}
	return r, nil
}

// DeleteReview removes a review and bumps its book's review set version.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var bookID string
	err = tx.QueryRowContext(ctx, `SELECT book_id FROM reviews WHERE id = ?`, id).Scan(&bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrReviewNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if err := bumpReviewRevision(ctx, tx, bookID); err != nil {
		return err
	}
	return tx.Commit()
}

// ListReviewsForBook returns a book's reviews, oldest first.
func (s *Store) ListReviewsForBook(ctx context.Context, bookID string) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE book_id = ? ORDER BY created_at, id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// ListReviewsForBooks loads the reviews of many books, grouped by book ID.
// Books without reviews are absent from the map.
func (s *Store) ListReviewsForBooks(ctx context.Context, bookIDs []string) (map[string][]*domain.Review, error) {
	out := make(map[string][]*domain.Review, len(bookIDs))
	for _, part := range chunk(bookIDs, sqliteMaxParams) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+reviewColumns+` FROM reviews
			WHERE book_id IN (`+placeholders(len(part))+`)
			ORDER BY book_id, created_at, id`,
			stringArgs(part)...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			r, err := scanReview(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			out[r.BookID] = append(out[r.BookID], r)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReviewSetVersion returns the book's review set version. It changes
// whenever a review of the book is added or removed.
func (s *Store) ReviewSetVersion(ctx context.Context, bookID string) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT review_revision FROM books WHERE id = ?`, bookID).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, store.ErrBookNotFound
	}
	return v, err
}

// ReviewSetVersions returns the review set versions of the given books.
func (s *Store) ReviewSetVersions(ctx context.Context, bookIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(bookIDs))
	for _, part := range chunk(bookIDs, sqliteMaxParams) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, review_revision FROM books WHERE id IN (`+placeholders(len(part))+`)`,
			stringArgs(part)...)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var (
				id string
				v  int64
			)
			if err := rows.Scan(&id, &v); err != nil {
				rows.Close()
				return nil, err
			}
			out[id] = v
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
