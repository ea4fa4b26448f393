package api

import (
	"github.com/bookcircle/bookcircle-server/internal/auth"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Book           *service.BookService
	Review         *service.ReviewService
	Profile        *service.ProfileService
	Shelf          *service.ShelfService
	Search         *service.SearchService
	Recommendation *service.RecommendationService
}

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.AccessClaims, error)
}
