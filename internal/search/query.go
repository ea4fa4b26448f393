package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/bookcircle/bookcircle-server/internal/normalize"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Params configures a catalogue search.
type Params struct {
	Query     string
	Subjects  []string // exact subject slugs; a book must carry one of them
	Limit     int
	Offset    int
	Highlight bool
}

// Result is one page of search hits.
type Result struct {
	Query    string       `json:"query"`
	Total    uint64       `json:"total"`
	TookMs   int64        `json:"took_ms"`
	Hits     []Hit        `json:"hits"`
	Subjects []FacetCount `json:"subjects,omitempty"`
}

// Hit is a matching book.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Authors    []string          `json:"authors,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// FacetCount is the number of hits carrying a subject.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func (p *Params) normalize() {
	p.Query = strings.TrimSpace(p.Query)
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	p.Limit = min(p.Limit, maxLimit)
	p.Offset = max(p.Offset, 0)
}

// Search runs params against the index.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	params.normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	req.Fields = []string{"title", "authors"}
	req.AddFacet("subjects", bleve.NewFacetRequest("subjects", 10))
	if params.Query == "" {
		req.SortBy([]string{"-created_at", "_id"})
	}
	if params.Highlight {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("title")
		req.Highlight.AddField("authors")
		req.Highlight.AddField("description")
	}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	out := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		out.Hits = append(out.Hits, toHit(h))
	}
	if f, ok := res.Facets["subjects"]; ok && f.Terms != nil {
		for _, term := range f.Terms.Terms() {
			out.Subjects = append(out.Subjects, FacetCount{Value: term.Term, Count: term.Count})
		}
	}
	return out, nil
}

func toHit(h *search.DocumentMatch) Hit {
	hit := Hit{ID: h.ID, Score: h.Score}
	if t, ok := h.Fields["title"].(string); ok {
		hit.Title = t
	}
	hit.Authors = stringList(h.Fields["authors"])
	if len(h.Fragments) > 0 {
		hit.Highlights = make(map[string]string, len(h.Fragments))
		for field, fragments := range h.Fragments {
			if len(fragments) > 0 {
				hit.Highlights[field] = fragments[0]
			}
		}
	}
	return hit
}

// stringList reads a stored field that Bleve returns as a string for one
// value and a slice for several.
func stringList(v any) []string {
	switch vv := v.(type) {
	case string:
		return []string{vv}
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func buildQuery(params Params) query.Query {
	var must []query.Query

	if params.Query != "" {
		var should []query.Query

		if isbn := normalize.ISBN(params.Query); isbn != "" {
			tq := bleve.NewTermQuery(isbn)
			tq.SetField("isbn")
			tq.SetBoost(10)
			should = append(should, tq)
		}

		title := bleve.NewMatchQuery(params.Query)
		title.SetField("title")
		title.SetBoost(3)
		should = append(should, title)

		authors := bleve.NewMatchQuery(params.Query)
		authors.SetField("authors")
		authors.SetBoost(2)
		should = append(should, authors)

		desc := bleve.NewMatchQuery(params.Query)
		desc.SetField("description")
		should = append(should, desc)

		fuzzy := bleve.NewFuzzyQuery(strings.ToLower(params.Query))
		fuzzy.SetField("title")
		fuzzy.SetFuzziness(1)
		fuzzy.SetBoost(0.8)
		should = append(should, fuzzy)

		if len(params.Query) >= 2 {
			prefix := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefix.SetField("title")
			prefix.SetBoost(0.5)
			should = append(should, prefix)
		}

		must = append(must, bleve.NewDisjunctionQuery(should...))
	}

	if len(params.Subjects) > 0 {
		subjects := make([]query.Query, 0, len(params.Subjects))
		for _, s := range params.Subjects {
			tq := bleve.NewTermQuery(normalize.Slugify(s))
			tq.SetField("subjects")
			subjects = append(subjects, tq)
		}
		must = append(must, bleve.NewDisjunctionQuery(subjects...))
	}

	switch len(must) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return must[0]
	default:
		return bleve.NewConjunctionQuery(must...)
	}
}
