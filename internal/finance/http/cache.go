package http

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds how stale a cached report may be. Reports are pure
// functions of stored transactions, so staleness only matters after writes.
const DefaultCacheTTL = 5 * time.Minute

// ReportCache stores serialized report responses in redis. Nil-safe: a nil
// cache turns every lookup into a miss.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache constructs the cache.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Get returns the cached payload for the key, if any.
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores the payload under the key for the cache TTL. Failures are
// swallowed; the cache is an optimization, never a dependency.
func (c *ReportCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Invalidate drops the caller's cached reports, e.g. after a transaction write.
func (c *ReportCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	pattern := fmt.Sprintf("report:*:%s:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

// VatCacheKey identifies a cached monthly VAT report.
func VatCacheKey(userID uuid.UUID, year, month int) string {
	return fmt.Sprintf("report:vat:%s:%d-%02d", userID, year, month)
}

// WarmVat computes the VAT report for one user and stores the serialized
// response under the same key the handler serves, so warmed entries are
// indistinguishable from request-driven ones.
func WarmVat(ctx context.Context, svc ReportService, cache *ReportCache, userID uuid.UUID, year, month int) error {
	report, err := svc.VatReport(ctx, userID, year, month)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(newVatReportResponse(report))
	if err != nil {
		return err
	}
	cache.Set(ctx, VatCacheKey(userID, year, month), payload)
	return nil
}

// IncomeTaxCacheKey identifies a cached income-tax report. Quarter 0 means
// the full year.
func IncomeTaxCacheKey(userID uuid.UUID, year int, quarter *int) string {
	q := 0
	if quarter != nil {
		q = *quarter
	}
	return fmt.Sprintf("report:incometax:%s:%d-q%d", userID, year, q)
}
