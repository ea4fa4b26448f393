package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/id"
	"github.com/bookcircle/bookcircle-server/internal/store"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// ScoreInvalidator drops memoized scores for a book.
type ScoreInvalidator interface {
	InvalidateBook(ctx context.Context, bookID string) error
}

// CreateReviewRequest is a reader's review of a book. ExperienceYears
// defaults to the reader's profile when omitted.
type CreateReviewRequest struct {
	Difficulty      int      `json:"difficulty" validate:"gte=1,lte=5"`
	ExperienceYears *float64 `json:"experience_years,omitempty" validate:"omitempty,gte=0,lte=80"`
	Body            string   `json:"body,omitempty" validate:"max=5000"`
}

// ReviewService manages reader reviews.
type ReviewService struct {
	reviews   store.ReviewStore
	books     store.BookStore
	profiles  store.ProfileStore
	scores    ScoreInvalidator
	validator *validation.Validator
	logger    *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(st store.Store, scores ScoreInvalidator, v *validation.Validator, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:   st,
		books:     st,
		profiles:  st,
		scores:    scores,
		validator: v,
		logger:    logger,
	}
}

// CreateReview records userID's review of bookID. Each reader reviews a book once.
func (s *ReviewService) CreateReview(ctx context.Context, userID, bookID string, req CreateReviewRequest) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var years float64
	if req.ExperienceYears != nil {
		years = *req.ExperienceYears
	} else {
		profile, err := s.profiles.GetProfile(ctx, userID)
		switch {
		case err == nil:
			years = profile.ExperienceYears
		case !domainerrors.Is(err, store.ErrNotFound):
			return nil, fmt.Errorf("load profile: %w", err)
		}
	}

	reviewID, err := id.Generate(id.PrefixReview)
	if err != nil {
		return nil, fmt.Errorf("generate review ID: %w", err)
	}

	review := &domain.Review{
		ID:              reviewID,
		BookID:          bookID,
		UserID:          userID,
		Difficulty:      req.Difficulty,
		ExperienceYears: years,
		Body:            req.Body,
		CreatedAt:       time.Now(),
	}
	review.Clamp()

	if err := s.reviews.CreateReview(ctx, review); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("you have already reviewed this book")
		}
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.Info("review created",
		"review_id", review.ID,
		"book_id", bookID,
		"user_id", userID,
		"difficulty", review.Difficulty,
	)
	s.invalidate(ctx, bookID)
	return review, nil
}

// DeleteReview removes a review. Only its author may delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	review, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return domainerrors.Forbidden("you did not write this review")
	}

	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.logger.Info("review deleted", "review_id", reviewID, "book_id", review.BookID, "user_id", userID)
	s.invalidate(ctx, review.BookID)
	return nil
}

// ListReviews returns a book's reviews, oldest first.
func (s *ReviewService) ListReviews(ctx context.Context, bookID string) ([]*domain.Review, error) {
	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListReviewsForBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, nil
}

// Stale entries are already unreachable through the version key; this
// only frees them early.
func (s *ReviewService) invalidate(ctx context.Context, bookID string) {
	if s.scores == nil {
		return
	}
	if err := s.scores.InvalidateBook(ctx, bookID); err != nil {
		s.logger.Warn("failed to invalidate cached scores", "book_id", bookID, "error", err)
	}
}
