package store

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// PaginationParams contains cursor pagination request parameters.
type PaginationParams struct {
	Limit  int    // items per page, defaults to 100, capped at 1000
	Cursor string // opaque cursor for the next page, empty for the first
}

// PaginatedResult contains one page of items and the cursor to the next.
type PaginatedResult[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
	Total      int    `json:"total"`
}

// Validate clamps the limit into its allowed range.
func (p *PaginationParams) Validate() {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
}

// EncodeCursor joins key parts with "|" into an opaque cursor.
func EncodeCursor(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, "|")))
}

// DecodeCursor splits a cursor produced by EncodeCursor into n parts.
func DecodeCursor(cursor string, n int) ([]string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cursor", ErrInvalidInput)
	}
	parts := strings.SplitN(string(decoded), "|", n)
	if len(parts) != n {
		return nil, fmt.Errorf("%w: invalid cursor format", ErrInvalidInput)
	}
	return parts, nil
}
