package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/service"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBookRecommendation",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/recommendation",
		Summary:     "Score book",
		Description: "Scores how well a book fits the current user. Returns NO_DATA when nobody has reviewed the book yet.",
		Tags:        []string{"Recommendations"},
		Security:    bearerAuth,
	}, s.handleGetBookRecommendation)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations",
		Summary:     "List recommendations",
		Description: "Scores the catalogue for the current user and returns the best fits first",
		Tags:        []string{"Recommendations"},
		Security:    bearerAuth,
	}, s.handleListRecommendations)
}

// === DTOs ===

// GetBookRecommendationInput contains parameters for scoring one book.
type GetBookRecommendationInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// RecommendationOutput wraps a single recommendation for Huma.
type RecommendationOutput struct {
	Body *service.Recommendation
}

// ListRecommendationsInput contains filters for listing recommendations.
type ListRecommendationsInput struct {
	Limit          int  `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Page size"`
	Offset         int  `query:"offset" default:"0" minimum:"0" doc:"Number of results to skip"`
	ExcludeShelved bool `query:"exclude_shelved" doc:"Skip books already on one of your shelves"`
	MinReviews     int  `query:"min_reviews" minimum:"0" doc:"Only include books with at least this many reviews"`
}

// RecommendationPageOutput wraps a page of recommendations for Huma.
type RecommendationPageOutput struct {
	Body *service.RecommendationPage
}

// === Handlers ===

func (s *Server) handleGetBookRecommendation(ctx context.Context, input *GetBookRecommendationInput) (*RecommendationOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.services.Recommendation.ScoreBook(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &RecommendationOutput{Body: rec}, nil
}

func (s *Server) handleListRecommendations(ctx context.Context, input *ListRecommendationsInput) (*RecommendationPageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Recommendation.ListRecommendations(ctx, userID, service.ListRecommendationsParams{
		Limit:          input.Limit,
		Offset:         input.Offset,
		ExcludeShelved: input.ExcludeShelved,
		MinReviews:     input.MinReviews,
	})
	if err != nil {
		return nil, err
	}
	return &RecommendationPageOutput{Body: page}, nil
}
