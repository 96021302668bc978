package businessflow

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGenerationLocker(t *testing.T) {
	locker := NewLocalGenerationLocker()
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "set-1")
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "set-1")
	require.Error(t, err)
	assert.True(t, IsGenerationInProgress(err))
	assert.True(t, IsGenerationConflict(err))

	otherRelease, err := locker.Acquire(ctx, "set-2")
	require.NoError(t, err, "different campaign sets do not contend")
	otherRelease()

	release()
	release() // double release is harmless

	again, err := locker.Acquire(ctx, "set-1")
	require.NoError(t, err)
	again()
}

func TestLocalGenerationLocker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalGenerationLocker().Acquire(ctx, "set-1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalGenerationLocker_Concurrent(t *testing.T) {
	locker := NewLocalGenerationLocker()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
		releases []func()
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), "set-1")
			if err != nil {
				return
			}
			mu.Lock()
			acquired++
			releases = append(releases, release)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired)
	for _, release := range releases {
		release()
	}
}

// Runs only when TEST_REDIS_URL points at a reachable redis
func TestRedisGenerationLocker(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rc := redis.NewClient(opt)
	defer rc.Close()

	ctx := context.Background()
	require.NoError(t, rc.Ping(ctx).Err())

	prefix := "campaign-forge-test:" + time.Now().Format("150405.000000") + ":"
	locker := NewRedisGenerationLocker(rc, prefix, time.Minute)

	release, err := locker.Acquire(ctx, "set-1")
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "set-1")
	require.Error(t, err)
	assert.True(t, IsGenerationInProgress(err))

	release()

	again, err := locker.Acquire(ctx, "set-1")
	require.NoError(t, err)
	again()

	exists, err := rc.Exists(ctx, prefix+"generation:lock:set-1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}
