// Package uastats counts classified user agents per UTC day.
//
// Each Event contributes one hit to each of four dimensions: the OS name, the
// agent name, the device model (when known) and the bot flag. Store
// implementations answer Top queries with the most frequent values of a
// dimension for one day.
//
// Backends:
//
//   - MemoryStore keeps counters in process.
//   - RedisStore increments hash fields under "<prefix>:<day>:<dimension>"
//     and expires them after a TTL.
//   - PostgresStore upserts rows of ua_stats. Apply Migrations with pg.Migrate
//     before use.
//
// Recorder ties a Store to a useragent.Classifier:
//
//	rec := uastats.NewRecorder(uastats.NewRedisStore(client), nil)
//	summary := rec.Observe(ctx, r.UserAgent())
package uastats
