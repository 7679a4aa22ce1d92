package ports

import (
	"context"

	"github.com/via/votehub/internal/core/domain"
)

// ResultsCache holds a precomputed Results payload with a short TTL.
// A cache miss is (nil, nil); only transport failures return an error.
type ResultsCache interface {
	Get(ctx context.Context) (*domain.Results, error)
	Set(ctx context.Context, results *domain.Results) error
}

type AnalyticsService interface {
	// Results returns the ranked dashboard payload, served from cache when
	// fresh and recomputed from the vote store otherwise.
	Results(ctx context.Context) (*domain.Results, error)
	// Recompute rebuilds the payload from the stores and refreshes the cache.
	Recompute(ctx context.Context) (*domain.Results, error)
}
