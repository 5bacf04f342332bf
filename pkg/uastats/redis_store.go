package uastats

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "uakit:stats"
	defaultRedisTTL    = 35 * 24 * time.Hour
)

// RedisStore keeps one hash per day and dimension, keyed
// "<prefix>:<day>:<dimension>", with values as fields and hits as counts.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix overrides the "uakit:stats" key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.prefix = prefix
		}
	}
}

// WithTTL sets how long a day's hashes live after their last write.
// Zero keeps them forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(rs *RedisStore) {
		if ttl >= 0 {
			rs.ttl = ttl
		}
	}
}

// NewRedisStore returns a store backed by client.
func NewRedisStore(client redis.Cmdable, opts ...RedisOption) *RedisStore {
	rs := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
		ttl:    defaultRedisTTL,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Key returns the hash key for day and dim.
func (rs *RedisStore) Key(day string, dim Dimension) string {
	return rs.prefix + ":" + day + ":" + string(dim)
}

func (rs *RedisStore) Record(ctx context.Context, e Event) error {
	day := e.day()
	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, v := range e.values() {
			key := rs.Key(day, v.dim)
			pipe.HIncrBy(ctx, key, v.val, 1)
			if rs.ttl > 0 {
				pipe.Expire(ctx, key, rs.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrRecordFailed, err)
	}
	return nil
}

func (rs *RedisStore) Top(ctx context.Context, dim Dimension, day time.Time, limit int) ([]Count, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return nil, err
	}

	fields, err := rs.client.HGetAll(ctx, rs.Key(Day(day), dim)).Result()
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	out := make([]Count, 0, len(fields))
	for v, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		out = append(out, Count{Value: v, Hits: n})
	}
	return topN(out, limit), nil
}
