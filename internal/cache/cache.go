// Package cache provides the two caching tiers matchserver uses: a
// process-local ristretto cache for hot read paths (e.g. a seat's last
// LocalState snapshot, reused on reconnect) and a shared redis client for
// cross-node state (session tokens, match-to-node routing).
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/redis/go-redis/v9"

	"github.com/lamyinia/mahjongmatch/internal/config"
)

// Local wraps a ristretto cache with a default TTL, used for
// reconnect-window snapshot caching so a resuming client doesn't force a
// full MatchState replay.
type Local struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewLocal creates a local cache sized for matchserver's working set:
// at most a few thousand live snapshots at any time.
func NewLocal(ttl time.Duration) (*Local, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 28, // Set charges a cost of 1 per entry, so this caps the entry count
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: new ristretto cache: %w", err)
	}
	return &Local{cache: c, ttl: ttl}, nil
}

func (l *Local) Set(key string, value any) bool {
	return l.cache.SetWithTTL(key, value, 1, l.ttl)
}

func (l *Local) Get(key string) (any, bool) {
	return l.cache.Get(key)
}

func (l *Local) Delete(key string) {
	l.cache.Del(key)
}

func (l *Local) Close() {
	l.cache.Close()
}

// Redis wraps the shared redis client used for session tokens and
// match-id-to-node routing, so any matchserver node can look up where a
// reconnecting client's match lives.
type Redis struct {
	cli *redis.Client
}

// NewRedis connects to redis per conf, failing fast (matching the
// teacher's connect-or-panic startup pattern) since matchserver cannot
// usefully run without its routing table.
func NewRedis(conf config.RedisConf) (*Redis, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:         conf.Addr,
		Password:     conf.Password,
		PoolSize:     conf.PoolSize,
		MinIdleConns: conf.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}

	return &Redis{cli: cli}, nil
}

// SetMatchRoute records which node owns matchID, so any node's account
// gateway can forward a reconnecting client's requests there.
func (r *Redis) SetMatchRoute(ctx context.Context, matchID uint32, nodeID string, ttl time.Duration) error {
	key := fmt.Sprintf("match:route:%d", matchID)
	return r.cli.Set(ctx, key, nodeID, ttl).Err()
}

// GetMatchRoute looks up which node owns matchID.
func (r *Redis) GetMatchRoute(ctx context.Context, matchID uint32) (string, error) {
	key := fmt.Sprintf("match:route:%d", matchID)
	return r.cli.Get(ctx, key).Result()
}

func (r *Redis) Close() error {
	return r.cli.Close()
}
