// Package main seeds a BookCircle database with a sample catalogue, reader
// profiles and reviews, then prints a development token for each reader.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/bookcircle
//	SEED_REVIEWS=40 go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bookcircle/bookcircle-server/internal/auth"
	"github.com/bookcircle/bookcircle-server/internal/cache"
	"github.com/bookcircle/bookcircle-server/internal/config"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/id"
	"github.com/bookcircle/bookcircle-server/internal/logger"
	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/service"
	"github.com/bookcircle/bookcircle-server/internal/store/sqlite"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

type reader struct {
	name  string
	years float64
}

var readers = []reader{
	{"Ada", 0.5},
	{"Bastian", 2},
	{"Celia", 4},
	{"Dmitri", 7},
	{"Esme", 15},
	{"Farid", 1},
}

var books = []service.CreateBookRequest{
	{Title: "The Little Prince", Authors: []string{"Antoine de Saint-Exupéry"}, Subjects: []string{"Fiction", "Classics"}, PageCount: 96},
	{Title: "The Hobbit", Authors: []string{"J. R. R. Tolkien"}, Subjects: []string{"Fantasy"}, PageCount: 310},
	{Title: "Dune", Authors: []string{"Frank Herbert"}, Subjects: []string{"Science Fiction"}, PageCount: 412},
	{Title: "Middlemarch", Authors: []string{"George Eliot"}, Subjects: []string{"Classics", "Literary Fiction"}, PageCount: 880},
	{Title: "Gödel, Escher, Bach", Authors: []string{"Douglas Hofstadter"}, Subjects: []string{"Philosophy", "Mathematics"}, PageCount: 777},
	{Title: "Ulysses", Authors: []string{"James Joyce"}, Subjects: []string{"Literary Fiction", "Modernism"}, PageCount: 730},
	{Title: "Charlotte's Web", Authors: []string{"E. B. White"}, Subjects: []string{"Children"}, PageCount: 192},
	{Title: "The Name of the Rose", Authors: []string{"Umberto Eco"}, Subjects: []string{"Mystery", "Historical Fiction"}, PageCount: 536},
	{Title: "A Brief History of Time", Authors: []string{"Stephen Hawking"}, Subjects: []string{"Science"}, PageCount: 212},
	{Title: "Infinite Jest", Authors: []string{"David Foster Wallace"}, Subjects: []string{"Literary Fiction"}, PageCount: 1079},
}

// Baseline difficulty per book, same order as books.
var baseDifficulty = []int{1, 2, 3, 4, 5, 5, 1, 4, 3, 5}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	reviewsPerReader := len(books)
	if v := os.Getenv("SEED_REVIEWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid SEED_REVIEWS: %v", err)
		}
		reviewsPerReader = max(0, min(n, len(books)))
	}

	appLog := logger.New(logger.Config{Level: logger.ParseLevel(cfg.Logger.Level)})

	fmt.Printf("Opening database at: %s\n", cfg.Data.BasePath)
	if err := os.MkdirAll(cfg.Data.BasePath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := sqlite.Open(filepath.Join(cfg.Data.BasePath, "bookcircle.db"), appLog.Component("store"))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	index, err := search.Open(search.Options{DataPath: cfg.Data.BasePath, Logger: appLog.Component("search")})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		log.Fatalf("Failed to load auth key: %v", err)
	}
	tokens, err := auth.NewTokenService(key, cfg.Auth.AccessTokenDuration)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	v := validation.New()
	bookSvc := service.NewBookService(st, index, v, appLog.Component("books"))
	profileSvc := service.NewProfileService(st, v, appLog.Component("profiles"))
	reviewSvc := service.NewReviewService(st, cache.Noop{}, v, appLog.Component("reviews"))
	searchSvc := service.NewSearchService(index, st, appLog.Component("search"))

	ctx := context.Background()

	bookIDs := make([]string, 0, len(books))
	for _, req := range books {
		b, err := bookSvc.CreateBook(ctx, req)
		if err != nil {
			log.Fatalf("Failed to create book %q: %v", req.Title, err)
		}
		bookIDs = append(bookIDs, b.ID)
		fmt.Printf("  book %s  %s\n", b.ID, b.Title)
	}

	rng := rand.New(rand.NewPCG(42, 7))
	var created, skipped int

	for _, r := range readers {
		userID, err := id.Generate(id.PrefixUser)
		if err != nil {
			log.Fatalf("Failed to generate user ID: %v", err)
		}
		if _, err := profileSvc.UpdateProfile(ctx, userID, service.UpdateProfileRequest{
			DisplayName:     r.name,
			ExperienceYears: r.years,
		}); err != nil {
			log.Fatalf("Failed to create profile for %s: %v", r.name, err)
		}

		for _, i := range rng.Perm(len(bookIDs))[:reviewsPerReader] {
			// Experienced readers find hard books a little easier.
			difficulty := baseDifficulty[i] + rng.IntN(3) - 1
			if r.years >= 5 {
				difficulty--
			}
			difficulty = max(1, min(5, difficulty))

			_, err := reviewSvc.CreateReview(ctx, userID, bookIDs[i], service.CreateReviewRequest{
				Difficulty: difficulty,
			})
			switch {
			case err == nil:
				created++
			case domainerrors.Is(err, domainerrors.ErrAlreadyExists):
				skipped++
			default:
				log.Fatalf("Failed to create review: %v", err)
			}
		}

		token, err := tokens.GenerateAccessToken(userID, r.name)
		if err != nil {
			log.Fatalf("Failed to generate token: %v", err)
		}
		fmt.Printf("\n%s (%s, %.1f years)\n  token: %s\n", r.name, userID, r.years, token)
	}

	n, err := searchSvc.Reindex(ctx)
	if err != nil {
		log.Fatalf("Failed to reindex: %v", err)
	}

	fmt.Printf("\nCreated %d reviews (%d skipped), indexed %d books\n", created, skipped, n)
}
