package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib" // Import the driver
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	url          TEXT PRIMARY KEY,
	page         INTEGER NOT NULL,
	body         TEXT NOT NULL,
	status_code  INTEGER NOT NULL,
	load_time_ms BIGINT NOT NULL,
	fetched_at   TIMESTAMPTZ NOT NULL
)`

type Storage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Open connects to Postgres, pinging up to attempts times with delay between
// tries so the program can start before the database is ready.
func Open(ctx context.Context, dsn string, attempts int, delay time.Duration) (*Storage, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		db, err := sql.Open("pgx", dsn)
		if err == nil {
			if err = db.PingContext(ctx); err == nil {
				log.Println("Connected to database")
				return NewStorage(db), nil
			}
			db.Close()
		}
		lastErr = err
		log.Printf("Waiting for DB... (%v)", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", attempts, lastErr)
}

func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create pages table: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
