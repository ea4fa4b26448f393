package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

func (s *Server) registerShelfRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMyShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves",
		Summary:     "List my shelves",
		Description: "Returns all shelves owned by the current user",
		Tags:        []string{"Shelves"},
		Security:    bearerAuth,
	}, s.handleListMyShelves)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createShelf",
		Method:        http.MethodPost,
		Path:          "/api/v1/shelves",
		Summary:       "Create shelf",
		Description:   "Creates a new shelf for organizing books",
		Tags:          []string{"Shelves"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, s.handleCreateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShelf",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Get shelf",
		Description: "Returns a shelf by ID with its books, newest first",
		Tags:        []string{"Shelves"},
		Security:    bearerAuth,
	}, s.handleGetShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateShelf",
		Method:      http.MethodPatch,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Update shelf",
		Description: "Updates shelf metadata (owner only)",
		Tags:        []string{"Shelves"},
		Security:    bearerAuth,
	}, s.handleUpdateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteShelf",
		Method:        http.MethodDelete,
		Path:          "/api/v1/shelves/{id}",
		Summary:       "Delete shelf",
		Description:   "Deletes a shelf (owner only)",
		Tags:          []string{"Shelves"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerAuth,
	}, s.handleDeleteShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "addBookToShelf",
		Method:      http.MethodPost,
		Path:        "/api/v1/shelves/{id}/books",
		Summary:     "Add book to shelf",
		Description: "Puts a book at the front of a shelf (owner only)",
		Tags:        []string{"Shelves"},
		Security:    bearerAuth,
	}, s.handleAddBookToShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeBookFromShelf",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shelves/{id}/books/{bookId}",
		Summary:     "Remove book from shelf",
		Description: "Removes a book from a shelf (owner only)",
		Tags:        []string{"Shelves"},
		Security:    bearerAuth,
	}, s.handleRemoveBookFromShelf)
}

// === DTOs ===

// ShelfResponse contains shelf data in API responses.
type ShelfResponse struct {
	ID          string    `json:"id" doc:"Shelf ID"`
	OwnerID     string    `json:"owner_id" doc:"Owner user ID"`
	Name        string    `json:"name" doc:"Shelf name"`
	Description string    `json:"description,omitempty" doc:"Shelf description"`
	BookIDs     []string  `json:"book_ids" doc:"Books on the shelf, newest first"`
	BookCount   int       `json:"book_count" doc:"Number of books in shelf"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// ShelfOutput wraps the shelf response for Huma.
type ShelfOutput struct {
	Body ShelfResponse
}

// ListShelvesResponse contains a list of shelves.
type ListShelvesResponse struct {
	Shelves []ShelfResponse `json:"shelves" doc:"List of shelves"`
}

// ListShelvesOutput wraps the list shelves response for Huma.
type ListShelvesOutput struct {
	Body ListShelvesResponse
}

// ShelfRequest is the request body for creating or updating a shelf.
type ShelfRequest struct {
	Name        string `json:"name" minLength:"1" maxLength:"100" doc:"Shelf name"`
	Description string `json:"description,omitempty" maxLength:"1000" doc:"Shelf description"`
}

// CreateShelfInput wraps the create shelf request for Huma.
type CreateShelfInput struct {
	Body ShelfRequest
}

// ShelfIDInput identifies a shelf.
type ShelfIDInput struct {
	ID string `path:"id" doc:"Shelf ID"`
}

// UpdateShelfInput wraps the update shelf request for Huma.
type UpdateShelfInput struct {
	ID   string `path:"id" doc:"Shelf ID"`
	Body ShelfRequest
}

// AddBookToShelfRequest is the request body for adding a book to a shelf.
type AddBookToShelfRequest struct {
	BookID string `json:"book_id" minLength:"1" doc:"Book ID to add"`
}

// AddBookToShelfInput wraps the add book request for Huma.
type AddBookToShelfInput struct {
	ID   string `path:"id" doc:"Shelf ID"`
	Body AddBookToShelfRequest
}

// RemoveBookFromShelfInput contains parameters for removing a book from a shelf.
type RemoveBookFromShelfInput struct {
	ID     string `path:"id" doc:"Shelf ID"`
	BookID string `path:"bookId" doc:"Book ID"`
}

// === Handlers ===

func (s *Server) handleListMyShelves(ctx context.Context, _ *struct{}) (*ListShelvesOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelves, err := s.services.Shelf.ListMyShelves(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]ShelfResponse, len(shelves))
	for i, shelf := range shelves {
		resp[i] = mapShelfResponse(shelf)
	}
	return &ListShelvesOutput{Body: ListShelvesResponse{Shelves: resp}}, nil
}

func (s *Server) handleCreateShelf(ctx context.Context, input *CreateShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.CreateShelf(ctx, userID, service.ShelfRequest(input.Body))
	if err != nil {
		return nil, err
	}
	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleGetShelf(ctx context.Context, input *ShelfIDInput) (*ShelfOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.GetShelf(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleUpdateShelf(ctx context.Context, input *UpdateShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.UpdateShelf(ctx, userID, input.ID, service.ShelfRequest(input.Body))
	if err != nil {
		return nil, err
	}
	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleDeleteShelf(ctx context.Context, input *ShelfIDInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Shelf.DeleteShelf(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleAddBookToShelf(ctx context.Context, input *AddBookToShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.AddBook(ctx, userID, input.ID, input.Body.BookID)
	if err != nil {
		return nil, err
	}
	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func (s *Server) handleRemoveBookFromShelf(ctx context.Context, input *RemoveBookFromShelfInput) (*ShelfOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.RemoveBook(ctx, userID, input.ID, input.BookID)
	if err != nil {
		return nil, err
	}
	return &ShelfOutput{Body: mapShelfResponse(shelf)}, nil
}

func mapShelfResponse(shelf *domain.Shelf) ShelfResponse {
	return ShelfResponse{
		ID:          shelf.ID,
		OwnerID:     shelf.OwnerID,
		Name:        shelf.Name,
		Description: shelf.Description,
		BookIDs:     nonNil(shelf.BookIDs),
		BookCount:   len(shelf.BookIDs),
		CreatedAt:   shelf.CreatedAt,
		UpdatedAt:   shelf.UpdatedAt,
	}
}
