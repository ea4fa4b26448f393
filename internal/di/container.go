// Package di provides dependency injection configuration for the BookCircle server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookcircle/bookcircle-server/internal/api"
	"github.com/bookcircle/bookcircle-server/internal/auth"
	"github.com/bookcircle/bookcircle-server/internal/config"
	"github.com/bookcircle/bookcircle-server/internal/di/providers"
	"github.com/bookcircle/bookcircle-server/internal/logger"
	"github.com/bookcircle/bookcircle-server/internal/service"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
// The HTTP listener is only started by Bootstrap.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideScoreCache)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideReviewService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideShelfService)
	do.Provide(injector, providers.ProvideRecommendationService)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	services := []func() error{
		invoke[*logger.Logger](injector),
		invoke[providers.AuthKey](injector),
		invoke[*validation.Validator](injector),
		invoke[*providers.StoreHandle](injector),
		invoke[*providers.ScoreCacheHandle](injector),
		invoke[*providers.SearchIndexHandle](injector),
		invoke[*service.SearchService](injector),
		invoke[*auth.TokenService](injector),
		invoke[*service.BookService](injector),
		invoke[*service.ReviewService](injector),
		invoke[*service.ProfileService](injector),
		invoke[*service.ShelfService](injector),
		invoke[*service.RecommendationService](injector),
		invoke[*api.Server](injector),
		invoke[*providers.HTTPServerHandle](injector),
	}
	for _, start := range services {
		if err := start(); err != nil {
			return err
		}
	}

	providers.TriggerSearchReindexIfNeeded(injector)
	return nil
}

func invoke[T any](injector do.Injector) func() error {
	return func() error {
		_, err := do.Invoke[T](injector)
		return err
	}
}
