// Package redis connects to the Redis instance backing shared UA statistics.
//
// Connect parses a redis:// URL, pings with retries and returns a ready
// *redis.Client. Healthcheck adapts a client into a readiness probe.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := uastats.NewRedisStore(client)
package redis
