// Package pg connects to PostgreSQL with pgx and applies goose migrations.
//
// Connect returns a pinged *pgxpool.Pool, retrying with linear backoff.
// Migrate runs the migrations of an fs.FS (usually embedded next to the code
// that owns the schema) through the pool:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, migrations, "migrations", cfg, log); err != nil {
//		return err
//	}
//
// Healthcheck adapts the pool into a readiness probe.
package pg
