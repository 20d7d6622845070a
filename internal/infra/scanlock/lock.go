package scanlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

const lockKey = "reminder:scan:lock"

// releaseScript deletes the lock only when it is still held by the
// releasing run, so a run that outlived its TTL cannot free a lock
// acquired by a newer run.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock serializes scan runs across instances with a single Redis key.
type Lock struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Lock {
	return &Lock{
		client: client,
		ttl:    ttl,
	}
}

// Acquire claims the scan lock for runID. It returns
// domain.ErrScanInProgress when another run already holds it.
func (l *Lock) Acquire(ctx context.Context, runID string) error {
	ok, err := l.client.SetNX(ctx, lockKey, runID, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire scan lock: %w", err)
	}
	if !ok {
		return domain.ErrScanInProgress
	}
	return nil
}

// Release frees the lock if runID still holds it. Losing the lock to
// TTL expiry is not an error; the scan result stands either way.
func (l *Lock) Release(ctx context.Context, runID string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKey}, runID).Err(); err != nil {
		return fmt.Errorf("failed to release scan lock: %w", err)
	}
	return nil
}
