package review

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"schema-engine/internal/common/logger"
	"schema-engine/internal/models"
)

// Cached decorates another Adapter with a redis cache. Caching is this
// adapter's own concern and invisible to the generator's contract. A cache
// miss triggers exactly one upstream attempt; upstream failures are not
// cached.
type Cached struct {
	upstream Adapter
	redis    *redis.Client
	ttl      time.Duration
	logger   logger.Logger
}

// cacheEntry distinguishes "cached absence" from a miss.
type cacheEntry struct {
	Absent bool               `json:"absent"`
	Data   *models.ReviewData `json:"data,omitempty"`
}

func NewCached(upstream Adapter, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Cached {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cached{
		upstream: upstream,
		redis:    rdb,
		ttl:      ttl,
		logger:   log,
	}
}

func (c *Cached) Fetch(ctx context.Context, productID, shopDomain string) (*models.ReviewData, error) {
	key := cacheKey(productID, shopDomain)

	if raw, err := c.redis.Get(ctx, key).Result(); err == nil {
		var entry cacheEntry
		if err := json.Unmarshal([]byte(raw), &entry); err == nil {
			if entry.Absent {
				return nil, nil
			}
			return entry.Data, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("review cache read failed", map[string]interface{}{
			"productId": productID,
			"error":     err.Error(),
		})
	}

	data, err := c.upstream.Fetch(ctx, productID, shopDomain)
	if err != nil {
		return nil, err
	}

	entry := cacheEntry{Absent: data == nil, Data: data}
	if raw, err := json.Marshal(entry); err == nil {
		if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("review cache write failed", map[string]interface{}{
				"productId": productID,
				"error":     err.Error(),
			})
		}
	}

	return data, nil
}

func cacheKey(productID, shopDomain string) string {
	return fmt.Sprintf("reviews:%s:%s", shopDomain, productID)
}
