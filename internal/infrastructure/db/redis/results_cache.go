package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/via/votehub/internal/core/domain"
)

const (
	resultsKey = "results:leaderboard"
	resultsTTL = time.Minute
)

// ResultsCache stores the precomputed dashboard payload under a single key
// with a short TTL, refreshed by the dispatcher after votes land.
type ResultsCache struct {
	client *redis.Client
}

// NewResultsCache creates a ResultsCache wrapping the given Redis client.
func NewResultsCache(client *redis.Client) *ResultsCache {
	return &ResultsCache{client: client}
}

// Get returns the cached payload, or (nil, nil) on a miss. A payload that no
// longer decodes counts as a miss.
func (c *ResultsCache) Get(ctx context.Context) (*domain.Results, error) {
	raw, err := c.client.Get(ctx, resultsKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("results cache get: %w", err)
	}

	var results domain.Results
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, nil
	}
	return &results, nil
}

// Set replaces the cached payload (expires after resultsTTL).
func (c *ResultsCache) Set(ctx context.Context, results *domain.Results) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("results cache encode: %w", err)
	}
	return c.client.Set(ctx, resultsKey, payload, resultsTTL).Err()
}
