package alerts

import (
	"context"
	"encoding/json"
	"time"

	"cafepos/internal/dto"

	"github.com/redis/go-redis/v9"
)

// One shared cache key: the HTTP endpoint reads it, the scan worker rewrites
// it after stock mutations. TTL keeps a stale report from outliving a crash
// of the worker.
const (
	CacheKey = "alerts:report"
	CacheTTL = 30 * time.Second
)

// ReadCache returns the cached report, or nil on miss/decode failure.
func ReadCache(ctx context.Context, rdb *redis.Client) *dto.AlertReport {
	cached, err := rdb.Get(ctx, CacheKey).Bytes()
	if err != nil {
		return nil
	}
	var report dto.AlertReport
	if err := json.Unmarshal(cached, &report); err != nil {
		return nil
	}
	return &report
}

// WriteCache stores a freshly computed report.
func WriteCache(ctx context.Context, rdb *redis.Client, report dto.AlertReport) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, CacheKey, b, CacheTTL).Err()
}
