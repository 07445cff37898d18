package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefrontReco/domain"

	"github.com/redis/go-redis/v9"
)

const trendingKeyPrefix = "reco:trending:"

// TrendingCache keeps the last computed trending list per requested limit.
// Trending is user independent, so one entry serves every user.
type TrendingCache struct {
	client *redis.Client
}

func NewTrendingCache(client *redis.Client) *TrendingCache {
	return &TrendingCache{client: client}
}

func trendingKey(limit int) string {
	return fmt.Sprintf("%s%d", trendingKeyPrefix, limit)
}

func (c *TrendingCache) Get(ctx context.Context, limit int) ([]domain.CandidateScore, bool, error) {
	val, err := c.client.Get(ctx, trendingKey(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read trending cache: %w", err)
	}

	var scores []domain.CandidateScore
	if err := json.Unmarshal(val, &scores); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal trending cache: %w", err)
	}

	return scores, true, nil
}

func (c *TrendingCache) Set(ctx context.Context, limit int, scores []domain.CandidateScore, ttl time.Duration) error {
	if scores == nil {
		scores = []domain.CandidateScore{}
	}

	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal trending cache: %w", err)
	}

	if err := c.client.Set(ctx, trendingKey(limit), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write trending cache: %w", err)
	}

	return nil
}
