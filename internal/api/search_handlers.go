package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search books",
		Description: "Full-text search over titles, authors, descriptions and ISBNs, with subject facets",
		Tags:        []string{"Search"},
		Security:    bearerAuth,
	}, s.handleSearch)
}

// SearchInput contains search parameters.
type SearchInput struct {
	Query     string `query:"q" maxLength:"500" doc:"Search text; empty lists newest books"`
	Subjects  string `query:"subjects" doc:"Comma-separated subject slugs to filter by"`
	Limit     int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Page size"`
	Offset    int    `query:"offset" default:"0" minimum:"0" doc:"Number of results to skip"`
	Highlight bool   `query:"highlight" doc:"Include highlighted fragments"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body *search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	var subjects []string
	for subject := range strings.SplitSeq(input.Subjects, ",") {
		if subject = strings.TrimSpace(subject); subject != "" {
			subjects = append(subjects, subject)
		}
	}

	result, err := s.services.Search.Search(ctx, search.Params{
		Query:     input.Query,
		Subjects:  subjects,
		Limit:     input.Limit,
		Offset:    input.Offset,
		Highlight: input.Highlight,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: result}, nil
}
