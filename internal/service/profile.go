package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/normalize"
	"github.com/bookcircle/bookcircle-server/internal/store"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// UpdateProfileRequest sets the reader's display name and experience.
type UpdateProfileRequest struct {
	DisplayName     string  `json:"display_name" validate:"max=100"`
	ExperienceYears float64 `json:"experience_years" validate:"gte=0,lte=80"`
}

// ProfileService manages reader profiles.
type ProfileService struct {
	store     store.ProfileStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(s store.ProfileStore, v *validation.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: s, validator: v, logger: logger}
}

// GetProfile returns the reader's profile, or an unsaved default for
// readers who never set one.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return domain.NewProfile(userID), nil
	}
	return p, err
}

// UpdateProfile replaces the reader's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	p := &domain.Profile{
		UserID:          userID,
		DisplayName:     normalize.Whitespace(req.DisplayName),
		ExperienceYears: req.ExperienceYears,
		UpdatedAt:       time.Now(),
	}
	if err := s.store.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID, "level", p.Level().String())
	return p, nil
}
