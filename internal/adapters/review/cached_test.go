// internal/adapters/review/cached_test.go
package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/common/errors"
	"schema-engine/internal/common/logger"
	"schema-engine/internal/models"
)

// countingAdapter tracks upstream calls and serves a scripted result.
type countingAdapter struct {
	calls int
	data  *models.ReviewData
	err   error
}

func (c *countingAdapter) Fetch(ctx context.Context, productID, shopDomain string) (*models.ReviewData, error) {
	c.calls++
	return c.data, c.err
}

func createCachedAdapter(t *testing.T, upstream Adapter) (*Cached, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCached(upstream, client, time.Minute, logger.NewTestLogger(t)), mr
}

func TestCached_Fetch_CachesUpstreamData(t *testing.T) {
	upstream := &countingAdapter{data: &models.ReviewData{AverageRating: 4.2, TotalReviews: 5}}
	cached, _ := createCachedAdapter(t, upstream)
	ctx := context.Background()

	first, err := cached.Fetch(ctx, "prod-1", "acme-goods.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := cached.Fetch(ctx, "prod-1", "acme-goods.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.calls)
}

func TestCached_Fetch_CachesAbsence(t *testing.T) {
	upstream := &countingAdapter{}
	cached, _ := createCachedAdapter(t, upstream)
	ctx := context.Background()

	data, err := cached.Fetch(ctx, "prod-1", "acme-goods.myshopify.com")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Absence is a cacheable answer, not a miss.
	data, err = cached.Fetch(ctx, "prod-1", "acme-goods.myshopify.com")
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, 1, upstream.calls)
}

func TestCached_Fetch_CacheKeyPerProduct(t *testing.T) {
	upstream := &countingAdapter{data: &models.ReviewData{TotalReviews: 1}}
	cached, mr := createCachedAdapter(t, upstream)
	ctx := context.Background()

	_, err := cached.Fetch(ctx, "prod-1", "acme-goods.myshopify.com")
	require.NoError(t, err)
	_, err = cached.Fetch(ctx, "prod-2", "acme-goods.myshopify.com")
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.calls)
	assert.True(t, mr.Exists("reviews:acme-goods.myshopify.com:prod-1"))
	assert.True(t, mr.Exists("reviews:acme-goods.myshopify.com:prod-2"))
}

func TestCached_Fetch_UpstreamFailureNotCached(t *testing.T) {
	upstream := &countingAdapter{err: errors.NewReviewFetchFailedError("prod-1", fmt.Errorf("boom"))}
	cached, mr := createCachedAdapter(t, upstream)
	ctx := context.Background()

	_, err := cached.Fetch(ctx, "prod-1", "acme-goods.myshopify.com")
	require.Error(t, err)
	assert.False(t, mr.Exists("reviews:acme-goods.myshopify.com:prod-1"))

	// The next run gets a fresh attempt.
	_, err = cached.Fetch(ctx, "prod-1", "acme-goods.myshopify.com")
	require.Error(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCached_Fetch_RedisFailureFallsThrough(t *testing.T) {
	client, mock := redismock.NewClientMock()
	key := cacheKey("prod-1", "acme-goods.myshopify.com")
	mock.ExpectGet(key).SetErr(fmt.Errorf("connection reset"))
	mock.Regexp().ExpectSet(key, `.*`, time.Minute).SetErr(fmt.Errorf("connection reset"))

	upstream := &countingAdapter{data: &models.ReviewData{TotalReviews: 3}}
	cached := NewCached(upstream, client, time.Minute, logger.NewTestLogger(t))

	data, err := cached.Fetch(context.Background(), "prod-1", "acme-goods.myshopify.com")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, 3, data.TotalReviews)
	assert.Equal(t, 1, upstream.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
