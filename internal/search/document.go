// Package search provides full-text catalogue search on Bleve.
package search

import (
	"github.com/bookcircle/bookcircle-server/internal/domain"
)

// BookDocument is the indexed form of a book. Field names match the index mapping.
type BookDocument struct {
	ID          string
	Title       string
	Authors     []string
	Description string
	Subjects    []string
	ISBN        string
	PageCount   int
	CreatedAt   int64 // unix millis
}

// NewBookDocument builds the index document for book.
func NewBookDocument(book *domain.Book) *BookDocument {
	return &BookDocument{
		ID:          book.ID,
		Title:       book.Title,
		Authors:     book.Authors,
		Description: book.Description,
		Subjects:    book.Subjects,
		ISBN:        book.ISBN,
		PageCount:   book.PageCount,
		CreatedAt:   book.CreatedAt.UnixMilli(),
	}
}

// toMap keys the document by the lowercase names used in the mapping.
func (d *BookDocument) toMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"title":      d.Title,
		"created_at": d.CreatedAt,
	}
	if len(d.Authors) > 0 {
		m["authors"] = d.Authors
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Subjects) > 0 {
		m["subjects"] = d.Subjects
	}
	if d.ISBN != "" {
		m["isbn"] = d.ISBN
	}
	if d.PageCount > 0 {
		m["page_count"] = d.PageCount
	}
	return m
}
