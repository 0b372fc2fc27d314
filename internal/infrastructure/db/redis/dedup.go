package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DBXDWARKA/office-runner-api/internal/core/domain"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for audit events backed by Redis.
// Key format: dedup:<trip_id>:<action>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact lifecycle event has already been recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, tripID string, action domain.TripAction, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tripID, action, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, tripID string, action domain.TripAction, ts time.Time) error {
	return d.client.Set(ctx, d.key(tripID, action, ts), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(tripID string, action domain.TripAction, ts time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", tripID, action, ts.Unix())
}
