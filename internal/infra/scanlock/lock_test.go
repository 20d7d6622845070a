package scanlock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scan/internal/testutil"
)

func TestLock_AcquireAndRelease(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	lock := New(client, time.Minute)

	if err := lock.Acquire(ctx, "run-1"); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	if err := lock.Acquire(ctx, "run-2"); !errors.Is(err, domain.ErrScanInProgress) {
		t.Fatalf("expected ErrScanInProgress, got %v", err)
	}

	if err := lock.Release(ctx, "run-1"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	if err := lock.Acquire(ctx, "run-2"); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
}

func TestLock_ReleaseByOtherRunIsNoop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	lock := New(client, time.Minute)

	if err := lock.Acquire(ctx, "run-1"); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	// A stale run must not free a lock it no longer holds.
	if err := lock.Release(ctx, "run-stale"); err != nil {
		t.Fatalf("release by other run returned error: %v", err)
	}

	if err := lock.Acquire(ctx, "run-2"); !errors.Is(err, domain.ErrScanInProgress) {
		t.Fatalf("expected lock still held, got %v", err)
	}
}

func TestLock_ExpiresAfterTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	lock := New(client, time.Second)

	if err := lock.Acquire(ctx, "run-1"); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	if err := lock.Acquire(ctx, "run-2"); err != nil {
		t.Fatalf("acquire after expiry failed: %v", err)
	}
}
