package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"staff-welfare-fund/internal/usecase/calc"
)

const summaryKey = "fund:summary"

// SummaryCache keeps the fund summary in redis for a short TTL. Misses and
// redis hiccups degrade to a recompute, never to an error.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

func (c *SummaryCache) Get(ctx context.Context) (*calc.FundSummary, bool) {
	raw, err := c.rdb.Get(ctx, summaryKey).Bytes()
	if err != nil {
		return nil, false
	}
	var s calc.FundSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Printf("summary cache: bad payload dropped: %v", err)
		_ = c.rdb.Del(ctx, summaryKey).Err()
		return nil, false
	}
	return &s, true
}

func (c *SummaryCache) Set(ctx context.Context, s *calc.FundSummary) {
	payload, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryKey, payload, c.ttl).Err(); err != nil {
		log.Printf("summary cache: set failed: %v", err)
	}
}

func (c *SummaryCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, summaryKey).Err(); err != nil {
		log.Printf("summary cache: invalidate failed: %v", err)
	}
}
