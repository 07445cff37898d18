package redis

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"storefrontReco/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestTrendingKey(t *testing.T) {
	if got := trendingKey(20); got != "reco:trending:20" {
		t.Fatalf("trendingKey = %q", got)
	}
}

func TestTrendingCacheRoundTrip(t *testing.T) {
	client := testClient(t)
	cache := NewTrendingCache(client)
	ctx := context.Background()
	limit := 7000 + int(time.Now().UnixNano()%1000)
	t.Cleanup(func() { client.Del(ctx, trendingKey(limit)) })

	if _, ok, err := cache.Get(ctx, limit); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := []domain.CandidateScore{
		{ProductID: 4, Score: 1, Reason: "Popular in Garden", Strategy: domain.StrategyTrending},
	}
	if err := cache.Set(ctx, limit, want, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := cache.Get(ctx, limit)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTokenRepository(t *testing.T) {
	client := testClient(t)
	repo := NewTokenRepository(client)
	ctx := context.Background()
	token := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, userKey("9001"), lookupKey(token)) })

	if _, err := repo.ValidateTokenFromRedis(ctx, token); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}

	err := repo.StoreToken(ctx, TokenData{UserID: "9001", Role: "customer", Token: token}, time.Minute)
	if err != nil {
		t.Fatalf("StoreToken: %v", err)
	}

	userID, err := repo.ValidateTokenFromRedis(ctx, token)
	if err != nil || userID != "9001" {
		t.Fatalf("ValidateTokenFromRedis = %q, %v", userID, err)
	}
}
