package businessflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amirphl/campaign-forge/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// GenerationLocker serializes generation runs per campaign set.
// Acquire fails fast with ErrGenerationInProgress when the set is already locked.
type GenerationLocker interface {
	Acquire(ctx context.Context, campaignSetID string) (release func(), err error)
}

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGenerationLocker holds a SET NX PX lock in redis with a random token
type RedisGenerationLocker struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisGenerationLocker creates a redis backed locker; prefix namespaces the keys
func NewRedisGenerationLocker(rc *redis.Client, prefix string, ttl time.Duration) *RedisGenerationLocker {
	if ttl <= 0 {
		ttl = utils.DefaultGenerationLockTTL
	}
	return &RedisGenerationLocker{rc: rc, prefix: prefix, ttl: ttl}
}

// Acquire implements GenerationLocker
func (l *RedisGenerationLocker) Acquire(ctx context.Context, campaignSetID string) (func(), error) {
	key := redisKey(l.prefix, utils.GenerationLockKeyPrefix+campaignSetID)
	token := uuid.NewString()

	ok, err := l.rc.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLockUnavailable, err)
	}
	if !ok {
		return nil, conflictError(ErrGenerationInProgress)
	}

	return func() {
		// The request context may already be cancelled at release time
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.rc, []string{key}, token).Err()
	}, nil
}

func redisKey(prefix, key string) string {
	return prefix + key
}

// LocalGenerationLocker is an in-process locker for single-instance deployments and tests
type LocalGenerationLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalGenerationLocker creates an in-process locker
func NewLocalGenerationLocker() *LocalGenerationLocker {
	return &LocalGenerationLocker{held: make(map[string]struct{})}
}

// Acquire implements GenerationLocker
func (l *LocalGenerationLocker) Acquire(ctx context.Context, campaignSetID string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[campaignSetID]; busy {
		return nil, conflictError(ErrGenerationInProgress)
	}
	l.held[campaignSetID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, campaignSetID)
			l.mu.Unlock()
		})
	}, nil
}
