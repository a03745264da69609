package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"media-review/pkg/utils"
)

// RatingCache keeps computed title ratings in redis so the AVG query is not
// re-run for every retrieve. It is strictly optional: with no redis address
// configured every lookup is a miss and the database stays authoritative.
// Review writes must invalidate the title's entry.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRatingCache(cfg utils.RedisConfig, log *zap.Logger) *RatingCache {
	cache := &RatingCache{
		ttl: time.Duration(cfg.TTLSeconds) * time.Second,
		log: log.With(zap.String("cache", "rating")),
	}

	if cfg.Addr == "" {
		return cache
	}

	cache.client = redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return cache
}

func ratingKey(titleID uuid.UUID) string {
	return fmt.Sprintf("rating:title:%s", titleID.String())
}

// Get returns the cached rating and whether the cache held an entry.
func (c *RatingCache) Get(ctx context.Context, titleID uuid.UUID) (*float64, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, ratingKey(titleID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Rating cache read failed", zap.Error(err))
		return nil, false
	}

	if val == "none" {
		// Cached absence: title had no reviews.
		return nil, true
	}

	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}

	return &rating, true
}

func (c *RatingCache) Set(ctx context.Context, titleID uuid.UUID, rating *float64) {
	if c == nil || c.client == nil {
		return
	}

	val := "none"
	if rating != nil {
		val = strconv.FormatFloat(*rating, 'f', -1, 64)
	}

	if err := c.client.Set(ctx, ratingKey(titleID), val, c.ttl).Err(); err != nil {
		c.log.Warn("Rating cache write failed", zap.Error(err))
	}
}

// Invalidate drops the title's entry; called on every review write.
func (c *RatingCache) Invalidate(ctx context.Context, titleID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, ratingKey(titleID)).Err(); err != nil {
		c.log.Warn("Rating cache invalidation failed", zap.Error(err))
	}
}
