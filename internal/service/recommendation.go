package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bookcircle/bookcircle-server/internal/cache"
	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/recommend"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

const (
	defaultRecommendationLimit = 20
	maxRecommendationLimit     = 100
)

// RecommendationConfig tunes the recommendation service.
type RecommendationConfig struct {
	Workers    int // concurrent scorers per listing
	MinReviews int // floor applied to every listing
}

// Recommendation is a scored book for one reader.
type Recommendation struct {
	BookID                    string               `json:"book_id"`
	Title                     string               `json:"title"`
	Authors                   []string             `json:"authors"`
	CoverURL                  string               `json:"cover_url,omitempty"`
	Score                     float64              `json:"score"`
	Reasons                   []string             `json:"reasons"`
	AvgDifficulty             float64              `json:"avg_difficulty"`
	ReviewCount               int                  `json:"review_count"`
	ExperienceLevelMatchCount int                  `json:"experience_level_match_count"`
	UserLevel                 string               `json:"user_level"`
	Components                recommend.Components `json:"components"`
}

// ListRecommendationsParams filters and pages a recommendation listing.
type ListRecommendationsParams struct {
	Limit          int
	Offset         int
	ExcludeShelved bool // skip books on any of the reader's shelves
	MinReviews     int
}

// RecommendationPage is one page of recommendations, best first.
type RecommendationPage struct {
	Items  []*Recommendation `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// RecommendationService scores catalogue books for readers.
type RecommendationService struct {
	store  store.Store
	cache  cache.Cache
	cfg    RecommendationConfig
	logger *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
// A nil cache disables memoization.
func NewRecommendationService(st store.Store, c cache.Cache, cfg RecommendationConfig, logger *slog.Logger) *RecommendationService {
	if c == nil {
		c = cache.Noop{}
	}
	cfg.Workers = max(cfg.Workers, 1)
	cfg.MinReviews = max(cfg.MinReviews, 0)
	return &RecommendationService{store: st, cache: c, cfg: cfg, logger: logger}
}

// ScoreBook scores one book for userID. A book nobody has reviewed yields
// a NoData error rather than a zero score.
func (s *RecommendationService) ScoreBook(ctx context.Context, userID, bookID string) (*Recommendation, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	years, err := s.readerYears(ctx, userID)
	if err != nil {
		return nil, err
	}

	version, err := s.store.ReviewSetVersion(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("review set version: %w", err)
	}

	key := cache.Key{BookID: bookID, Version: version, Level: recommend.Classify(years)}
	entry, ok := s.cached(ctx, key)
	if !ok {
		reviews, err := s.store.ListReviewsForBook(ctx, bookID)
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		entry = s.score(ctx, key, reviews, years)
	}

	if entry.NoData {
		return nil, domainerrors.NoDataf("no reviews yet for book %s", bookID)
	}
	return newRecommendation(book, entry.Score), nil
}

// ListRecommendations scores every candidate book for userID and returns
// one page, ordered by score, then review count, then book ID.
func (s *RecommendationService) ListRecommendations(ctx context.Context, userID string, params ListRecommendationsParams) (*RecommendationPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	if params.Limit <= 0 {
		params.Limit = defaultRecommendationLimit
	}
	params.Limit = min(params.Limit, maxRecommendationLimit)
	params.Offset = max(params.Offset, 0)
	minReviews := max(params.MinReviews, s.cfg.MinReviews)

	years, err := s.readerYears(ctx, userID)
	if err != nil {
		return nil, err
	}
	level := recommend.Classify(years)

	candidates, err := s.candidates(ctx, userID, params.ExcludeShelved)
	if err != nil {
		return nil, err
	}

	versions, err := s.store.ReviewSetVersions(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("review set versions: %w", err)
	}

	entries := make([]cache.Entry, len(candidates))
	keys := make([]cache.Key, len(candidates))
	var misses []int
	for i, bookID := range candidates {
		keys[i] = cache.Key{BookID: bookID, Version: versions[bookID], Level: level}
		entry, ok := s.cached(ctx, keys[i])
		if !ok {
			misses = append(misses, i)
			continue
		}
		entries[i] = entry
	}

	if len(misses) > 0 {
		missIDs := make([]string, len(misses))
		for j, i := range misses {
			missIDs[j] = candidates[i]
		}
		reviews, err := s.store.ListReviewsForBooks(ctx, missIDs)
		if err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Workers)
		for _, i := range misses {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				entries[i] = s.score(gctx, keys[i], reviews[candidates[i]], years)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	scores := make([]recommend.Score, 0, len(entries))
	for _, e := range entries {
		if e.NoData || e.Score.ReviewCount < minReviews {
			continue
		}
		scores = append(scores, e.Score)
	}
	slices.SortFunc(scores, compareScores)

	page := &RecommendationPage{
		Items:  []*Recommendation{},
		Total:  len(scores),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Offset >= len(scores) {
		return page, nil
	}
	scores = scores[params.Offset:min(params.Offset+params.Limit, len(scores))]

	ids := make([]string, len(scores))
	for i, sc := range scores {
		ids[i] = sc.BookID
	}
	books, err := s.store.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	byID := make(map[string]*domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	for _, sc := range scores {
		book, ok := byID[sc.BookID]
		if !ok {
			// Deleted between scoring and loading.
			continue
		}
		page.Items = append(page.Items, newRecommendation(book, sc))
	}

	s.logger.Debug("recommendations listed",
		"user_id", userID,
		"level", level.String(),
		"candidates", len(candidates),
		"scored", len(misses),
		"total", page.Total,
		"duration", time.Since(start),
	)
	return page, nil
}

func (s *RecommendationService) readerYears(ctx context.Context, userID string) (float64, error) {
	p, err := s.store.GetProfile(ctx, userID)
	switch {
	case err == nil:
		return p.ExperienceYears, nil
	case domainerrors.Is(err, store.ErrNotFound):
		return 0, nil
	default:
		return 0, fmt.Errorf("load profile: %w", err)
	}
}

func (s *RecommendationService) candidates(ctx context.Context, userID string, excludeShelved bool) ([]string, error) {
	ids, err := s.store.ListBookIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list book IDs: %w", err)
	}
	if !excludeShelved {
		return ids, nil
	}

	shelved, err := s.store.ShelvedBookIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("shelved books: %w", err)
	}
	return slices.DeleteFunc(ids, func(id string) bool {
		_, ok := shelved[id]
		return ok
	}), nil
}

// cached treats cache errors as misses.
func (s *RecommendationService) cached(ctx context.Context, key cache.Key) (cache.Entry, bool) {
	entry, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("score cache read failed", "key", key.String(), "error", err)
		return cache.Entry{}, false
	}
	return entry, ok
}

func (s *RecommendationService) score(ctx context.Context, key cache.Key, reviews []*domain.Review, years float64) cache.Entry {
	score, ok := recommend.Calculate(domain.ScorerInputs(reviews), years)
	entry := cache.Entry{Score: score, Level: key.Level, NoData: !ok}
	if ok {
		// Reviews carry the book ID; an empty set does not.
		entry.Score.BookID = key.BookID
	} else {
		entry.Score = recommend.Score{BookID: key.BookID, UserLevel: key.Level}
	}

	if err := s.cache.Put(ctx, key, entry); err != nil {
		s.logger.Warn("score cache write failed", "key", key.String(), "error", err)
	}
	return entry
}

func compareScores(a, b recommend.Score) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ReviewCount, a.ReviewCount); c != 0 {
		return c
	}
	return cmp.Compare(a.BookID, b.BookID)
}

func newRecommendation(book *domain.Book, s recommend.Score) *Recommendation {
	reasons := s.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return &Recommendation{
		BookID:                    book.ID,
		Title:                     book.Title,
		Authors:                   book.Authors,
		CoverURL:                  book.CoverURL,
		Score:                     s.Score,
		Reasons:                   reasons,
		AvgDifficulty:             s.AvgDifficulty,
		ReviewCount:               s.ReviewCount,
		ExperienceLevelMatchCount: s.ExperienceLevelMatchCount,
		UserLevel:                 s.UserLevel.String(),
		Components:                s.Components,
	}
}
