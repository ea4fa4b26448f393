package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// UpsertProfile inserts or replaces a reader profile.
func (s *Store) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, updated_at, display_name, experience_years)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			updated_at = excluded.updated_at,
			display_name = excluded.display_name,
			experience_years = excluded.experience_years`,
		p.UserID, formatTime(p.UpdatedAt), p.DisplayName, p.ExperienceYears,
	)
	return err
}

// GetProfile returns store.ErrProfileNotFound for readers without a profile.
func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, updated_at, display_name, experience_years FROM profiles WHERE user_id = ?`, userID)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrProfileNotFound
	}
	return p, err
}

// ListProfiles returns every profile ordered by user ID.
func (s *Store) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, updated_at, display_name, experience_years FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProfile(scanner interface{ Scan(dest ...any) error }) (*domain.Profile, error) {
	var (
		p         domain.Profile
		updatedAt string
	)
	if err := scanner.Scan(&p.UserID, &updatedAt, &p.DisplayName, &p.ExperienceYears); err != nil {
		return nil, err
	}
	t, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = t
	return &p, nil
}
