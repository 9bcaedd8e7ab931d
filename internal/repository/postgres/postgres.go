package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.DistributionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		DistributionRepository: NewDistributionRepository(db),
	}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS distributions (
	id                   TEXT PRIMARY KEY,
	item_id              TEXT NOT NULL,
	item_name            TEXT NOT NULL,
	quantity             INTEGER NOT NULL CHECK (quantity > 0),
	recipient_name       TEXT NOT NULL,
	recipient_contact    TEXT NOT NULL DEFAULT '',
	distributed_date     DATE NOT NULL,
	expected_return_date DATE,
	status               TEXT NOT NULL,
	returned_date        DATE,
	condition_on_return  TEXT NOT NULL DEFAULT '',
	created_on           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_on           TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate creates the journal table when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("Migrate", "CREATE TABLE IF NOT EXISTS distributions")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("Migrate", 0, err)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
