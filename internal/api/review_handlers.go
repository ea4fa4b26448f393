package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBookReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/reviews",
		Summary:     "List reviews",
		Description: "Returns every review of a book, oldest first",
		Tags:        []string{"Reviews"},
		Security:    bearerAuth,
	}, s.handleListBookReviews)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/books/{id}/reviews",
		Summary:       "Review book",
		Description:   "Records the current user's difficulty rating for a book. Each user reviews a book once.",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, s.handleCreateReview)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteReview",
		Method:        http.MethodDelete,
		Path:          "/api/v1/reviews/{id}",
		Summary:       "Delete review",
		Description:   "Deletes a review (author only)",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerAuth,
	}, s.handleDeleteReview)
}

// === DTOs ===

// ReviewResponse contains review data in API responses.
type ReviewResponse struct {
	ID              string    `json:"id" doc:"Review ID"`
	BookID          string    `json:"book_id" doc:"Reviewed book"`
	UserID          string    `json:"user_id" doc:"Reviewer"`
	Difficulty      int       `json:"difficulty" doc:"Difficulty from 1 (easy) to 5 (hard)"`
	ExperienceYears float64   `json:"experience_years" doc:"Reviewer's experience when reviewing"`
	Body            string    `json:"body,omitempty" doc:"Review text"`
	CreatedAt       time.Time `json:"created_at" doc:"Creation time"`
}

// ReviewOutput wraps the review response for Huma.
type ReviewOutput struct {
	Body ReviewResponse
}

// ListReviewsResponse contains a book's reviews.
type ListReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews" doc:"Reviews, oldest first"`
}

// ListReviewsOutput wraps the list reviews response for Huma.
type ListReviewsOutput struct {
	Body ListReviewsResponse
}

// ListBookReviewsInput contains parameters for listing a book's reviews.
type ListBookReviewsInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// CreateReviewRequest is the request body for reviewing a book.
type CreateReviewRequest struct {
	Difficulty      int      `json:"difficulty" minimum:"1" maximum:"5" doc:"Difficulty from 1 (easy) to 5 (hard)"`
	ExperienceYears *float64 `json:"experience_years,omitempty" minimum:"0" maximum:"80" doc:"Years of experience; defaults to the profile value"`
	Body            string   `json:"body,omitempty" maxLength:"5000" doc:"Review text"`
}

// CreateReviewInput wraps the create review request for Huma.
type CreateReviewInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body CreateReviewRequest
}

// DeleteReviewInput contains parameters for deleting a review.
type DeleteReviewInput struct {
	ID string `path:"id" doc:"Review ID"`
}

// === Handlers ===

func (s *Server) handleListBookReviews(ctx context.Context, input *ListBookReviewsInput) (*ListReviewsOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	reviews, err := s.services.Review.ListReviews(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = mapReviewResponse(r)
	}
	return &ListReviewsOutput{Body: ListReviewsResponse{Reviews: resp}}, nil
}

func (s *Server) handleCreateReview(ctx context.Context, input *CreateReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	review, err := s.services.Review.CreateReview(ctx, userID, input.ID, service.CreateReviewRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &ReviewOutput{Body: mapReviewResponse(review)}, nil
}

func (s *Server) handleDeleteReview(ctx context.Context, input *DeleteReviewInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Review.DeleteReview(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func mapReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:              r.ID,
		BookID:          r.BookID,
		UserID:          r.UserID,
		Difficulty:      r.Difficulty,
		ExperienceYears: r.ExperienceYears,
		Body:            r.Body,
		CreatedAt:       r.CreatedAt,
	}
}
