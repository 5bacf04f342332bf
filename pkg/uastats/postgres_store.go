package uastats

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Migrations holds the goose migrations for the ua_stats table, under
// MigrationsDir.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations passed to pg.Migrate.
const MigrationsDir = "migrations"

const (
	upsertCounter = `INSERT INTO ua_stats (day, dimension, value, hits)
VALUES ($1, $2, $3, 1)
ON CONFLICT (day, dimension, value) DO UPDATE SET hits = ua_stats.hits + 1`

	selectTop = `SELECT value, hits FROM ua_stats
WHERE day = $1 AND dimension = $2
ORDER BY hits DESC, value ASC
LIMIT $3`
)

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore upserts counters into ua_stats(day, dimension, value, hits).
type PostgresStore struct {
	db DB
}

// NewPostgresStore returns a store backed by db. Apply Migrations first.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (ps *PostgresStore) Record(ctx context.Context, e Event) error {
	day, err := time.Parse(DayLayout, e.day())
	if err != nil {
		return errors.Join(ErrRecordFailed, err)
	}

	batch := &pgx.Batch{}
	for _, v := range e.values() {
		batch.Queue(upsertCounter, day, string(v.dim), v.val)
	}

	br := ps.db.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return errors.Join(ErrRecordFailed, err)
		}
	}
	if err := br.Close(); err != nil {
		return errors.Join(ErrRecordFailed, err)
	}
	return nil
}

func (ps *PostgresStore) Top(ctx context.Context, dim Dimension, day time.Time, limit int) ([]Count, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return nil, err
	}
	d, err := time.Parse(DayLayout, Day(day))
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	rows, err := ps.db.Query(ctx, selectTop, d, string(dim), normalizeLimit(limit))
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[Count])
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return counts, nil
}
