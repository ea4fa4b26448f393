// Package domain contains the core entities of the BookCircle catalogue:
// books, reader reviews, reader profiles and shelves.
package domain

import "time"

// Book is a catalogue entry readers can review and shelve.
type Book struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	ISBN        string    `json:"isbn,omitempty"` // ISBN-13, digits only
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"` // Markdown
	CoverURL    string    `json:"cover_url,omitempty"`
	Authors     []string  `json:"authors"`
	Subjects    []string  `json:"subjects,omitempty"` // slugs
	PageCount   int       `json:"page_count,omitempty"`
}

// PrimaryAuthor returns the first listed author, or "" when unknown.
func (b *Book) PrimaryAuthor() string {
	if len(b.Authors) == 0 {
		return ""
	}
	return b.Authors[0]
}
