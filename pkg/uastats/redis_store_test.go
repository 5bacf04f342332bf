package uastats_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uakit/pkg/uastats"
)

func TestRedisStoreKey(t *testing.T) {
	t.Parallel()

	store := uastats.NewRedisStore(nil)
	assert.Equal(t, "uakit:stats:2024-03-01:os", store.Key("2024-03-01", uastats.DimensionOS))

	store = uastats.NewRedisStore(nil, uastats.WithKeyPrefix("test"))
	assert.Equal(t, "test:2024-03-01:bot", store.Key("2024-03-01", uastats.DimensionBot))
}

func TestRedisStoreUnknownDimension(t *testing.T) {
	t.Parallel()

	_, err := uastats.NewRedisStore(nil).Top(context.Background(), "nope", day1, 0)
	assert.ErrorIs(t, err, uastats.ErrUnknownDimension)
}

// Runs against a live server when UAKIT_TEST_REDIS_URL is set.
func TestRedisStoreIntegration(t *testing.T) {
	url := os.Getenv("UAKIT_TEST_REDIS_URL")
	if url == "" || testing.Short() {
		t.Skip("UAKIT_TEST_REDIS_URL not set")
	}

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)
	client := goredis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	prefix := "uakit:test:" + time.Now().Format("150405.000000")
	store := uastats.NewRedisStore(client, uastats.WithKeyPrefix(prefix), uastats.WithTTL(time.Minute))
	t.Cleanup(func() {
		for _, d := range uastats.Dimensions {
			client.Del(ctx, store.Key(uastats.Day(day1), d))
		}
	})

	require.NoError(t, store.Record(ctx, uastats.Event{At: day1, OS: "Linux", Agent: "Firefox"}))
	require.NoError(t, store.Record(ctx, uastats.Event{At: day1, OS: "Linux", Agent: "Chrome"}))

	top, err := store.Top(ctx, uastats.DimensionOS, day1, 0)
	require.NoError(t, err)
	assert.Equal(t, []uastats.Count{{"Linux", 2}}, top)

	ttl, err := client.TTL(ctx, store.Key(uastats.Day(day1), uastats.DimensionOS)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}
