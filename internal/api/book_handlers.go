package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/service"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns a page of the catalogue, oldest first",
		Tags:        []string{"Books"},
		Security:    bearerAuth,
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Create book",
		Description:   "Adds a book to the catalogue",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
		Security:    bearerAuth,
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Changes the fields present in the request",
		Tags:        []string{"Books"},
		Security:    bearerAuth,
	}, s.handleUpdateBook)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID          string    `json:"id" doc:"Book ID"`
	ISBN        string    `json:"isbn,omitempty" doc:"ISBN-13"`
	Title       string    `json:"title" doc:"Title"`
	Authors     []string  `json:"authors" doc:"Author names"`
	Description string    `json:"description,omitempty" doc:"Description in Markdown"`
	Subjects    []string  `json:"subjects" doc:"Subject slugs"`
	CoverURL    string    `json:"cover_url,omitempty" doc:"Cover image URL"`
	PageCount   int       `json:"page_count,omitempty" doc:"Number of pages"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// BookOutput wraps the book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// ListBooksInput contains pagination parameters for listing books.
type ListBooksInput struct {
	Limit  int    `query:"limit" default:"50" minimum:"1" maximum:"1000" doc:"Page size"`
	Cursor string `query:"cursor" doc:"Cursor from the previous page"`
}

// ListBooksResponse contains a page of books.
type ListBooksResponse struct {
	Books      []BookResponse `json:"books" doc:"Books on this page"`
	NextCursor string         `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore    bool           `json:"has_more" doc:"Whether more pages follow"`
}

// ListBooksOutput wraps the list books response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// CreateBookRequest is the request body for creating a book.
type CreateBookRequest struct {
	ISBN        string   `json:"isbn,omitempty" doc:"ISBN-10 or ISBN-13, hyphens allowed"`
	Title       string   `json:"title" maxLength:"500" doc:"Title"`
	Authors     []string `json:"authors" minItems:"1" maxItems:"20" doc:"Author names"`
	Description string   `json:"description,omitempty" maxLength:"20000" doc:"Description, plain text or HTML"`
	Subjects    []string `json:"subjects,omitempty" maxItems:"30" doc:"Subjects, slugified on save"`
	CoverURL    string   `json:"cover_url,omitempty" doc:"Cover image URL"`
	PageCount   int      `json:"page_count,omitempty" minimum:"0" doc:"Number of pages"`
}

// CreateBookInput wraps the create book request for Huma.
type CreateBookInput struct {
	Body CreateBookRequest
}

// GetBookInput contains parameters for getting a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookRequest is the request body for updating a book. Omitted
// fields are left unchanged.
type UpdateBookRequest struct {
	ISBN        *string   `json:"isbn,omitempty" doc:"ISBN-10 or ISBN-13"`
	Title       *string   `json:"title,omitempty" maxLength:"500" doc:"Title"`
	Authors     *[]string `json:"authors,omitempty" doc:"Author names"`
	Description *string   `json:"description,omitempty" doc:"Description"`
	Subjects    *[]string `json:"subjects,omitempty" doc:"Subjects"`
	CoverURL    *string   `json:"cover_url,omitempty" doc:"Cover image URL"`
	PageCount   *int      `json:"page_count,omitempty" doc:"Number of pages"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body UpdateBookRequest
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	params := store.PaginationParams{Limit: input.Limit, Cursor: input.Cursor}
	params.Validate()

	page, err := s.services.Book.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	books := make([]BookResponse, len(page.Items))
	for i, b := range page.Items {
		books[i] = mapBookResponse(b)
	}

	return &ListBooksOutput{Body: ListBooksResponse{
		Books:      books,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.CreateBook(ctx, service.CreateBookRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.UpdateBook(ctx, input.ID, service.UpdateBookRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func mapBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Authors:     nonNil(b.Authors),
		Description: b.Description,
		Subjects:    nonNil(b.Subjects),
		CoverURL:    b.CoverURL,
		PageCount:   b.PageCount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
