package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"cocktail-popularity/models"
)

const popularityColumns = 5

// PostgresWriter mirrors the popularity file into the cocktail_popularity table.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cocktail_popularity (
			popularity_rank INTEGER     PRIMARY KEY,
			id              TEXT        NOT NULL,
			external_rank   INTEGER     NOT NULL,
			name            TEXT        NOT NULL,
			source          VARCHAR(50) NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_cocktail_popularity_id ON cocktail_popularity(id);
	`)
	return err
}

// Write replaces the table contents with entries in a single transaction.
func (pw *PostgresWriter) Write(entries []models.PopularityEntry) error {
	return pw.WriteContext(context.Background(), entries)
}

// WriteContext is Write bounded by ctx; cancelling it rolls the transaction back.
func (pw *PostgresWriter) WriteContext(ctx context.Context, entries []models.PopularityEntry) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cocktail_popularity"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		query, args := insertBatchQuery(entries[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// insertBatchQuery builds a multi-row insert for batch. The same recipe id
// may appear under several popularity ranks.
func insertBatchQuery(batch []models.PopularityEntry) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*popularityColumns)

	for idx, e := range batch {
		base := idx * popularityColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4, base+5))
		valueArgs = append(valueArgs, e.ID, e.PopularityRank, e.ExternalRank, e.Name, e.Source)
	}

	query := fmt.Sprintf(`
		INSERT INTO cocktail_popularity (id, popularity_rank, external_rank, name, source)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
