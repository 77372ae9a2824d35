// Package trainrows persists labeled training samples in Postgres.
package trainrows

import (
	"context"
	"time"

	"solid-waffle/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createTrainingRowsTable = `
CREATE TABLE IF NOT EXISTS training_rows (
    id          BIGSERIAL PRIMARY KEY,
    source      TEXT NOT NULL,
    observed_at TIMESTAMPTZ NOT NULL,
    features    DOUBLE PRECISION[] NOT NULL,
    label       DOUBLE PRECISION,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (source, observed_at)
);`

type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type Repository struct {
	pool   pool
	tracer trace.Tracer
}

func NewRepository(pool pool, tracer trace.Tracer) *Repository {
	return &Repository{pool: pool, tracer: tracer}
}

func (r *Repository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "training-rows.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createTrainingRowsTable)
	return err
}

// UpsertRows inserts or refreshes observed samples, keyed by (source,
// observed_at). A later upsert may attach the label once the outcome is
// known.
func (r *Repository) UpsertRows(ctx context.Context, rows []domain.TrainingRow) error {
	if len(rows) == 0 {
		return nil
	}
	_, span := r.tracer.Start(ctx, "training-rows.upsert")
	defer span.End()

	batch := &pgx.Batch{}
	for i := range rows {
		batch.Queue(`
INSERT INTO training_rows (source, observed_at, features, label, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (source, observed_at) DO UPDATE SET
    features = EXCLUDED.features,
    label = COALESCE(EXCLUDED.label, training_rows.label),
    updated_at = NOW()`,
			rows[i].Source,
			rows[i].ObservedAt.UTC(),
			rows[i].Features,
			rows[i].Label,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// ListLabeled returns labeled rows observed in [from, to], oldest first.
func (r *Repository) ListLabeled(ctx context.Context, from, to time.Time) ([]domain.TrainingRow, error) {
	_, span := r.tracer.Start(ctx, "training-rows.list-labeled")
	defer span.End()

	rows, err := r.pool.Query(ctx, `
SELECT id, source, observed_at, features, label, updated_at
FROM training_rows
WHERE label IS NOT NULL AND observed_at >= $1 AND observed_at <= $2
ORDER BY observed_at ASC`, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TrainingRow
	for rows.Next() {
		var row domain.TrainingRow
		if err := rows.Scan(&row.ID, &row.Source, &row.ObservedAt, &row.Features, &row.Label, &row.UpdatedAt); err != nil {
			return nil, err
		}
		row.ObservedAt = row.ObservedAt.UTC()
		row.UpdatedAt = row.UpdatedAt.UTC()
		out = append(out, row)
	}
	return out, rows.Err()
}
