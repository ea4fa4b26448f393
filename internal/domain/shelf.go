package domain

import (
	"slices"
	"time"
)

// Shelf is a reader's named list of books. Shelved books can be excluded
// from that reader's recommendations.
type Shelf struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BookIDs     []string  `json:"book_ids"` // newest first
}

// AddBook prepends bookID. It returns false if the book is already shelved.
func (s *Shelf) AddBook(bookID string) bool {
	if slices.Contains(s.BookIDs, bookID) {
		return false
	}
	s.BookIDs = append([]string{bookID}, s.BookIDs...)
	s.UpdatedAt = time.Now()
	return true
}

// RemoveBook removes bookID, returning false if it was not on the shelf.
func (s *Shelf) RemoveBook(bookID string) bool {
	i := slices.Index(s.BookIDs, bookID)
	if i < 0 {
		return false
	}
	s.BookIDs = slices.Delete(s.BookIDs, i, i+1)
	s.UpdatedAt = time.Now()
	return true
}

// ContainsBook checks if bookID is on the shelf.
func (s *Shelf) ContainsBook(bookID string) bool {
	return slices.Contains(s.BookIDs, bookID)
}

// IsOwnedBy reports whether userID owns the shelf.
func (s *Shelf) IsOwnedBy(userID string) bool {
	return s.OwnerID == userID
}
