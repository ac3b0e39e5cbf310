package storage

import (
	"context"
	"log"

	"go-pagefetch/pkg/models"
)

// PageSink implements pager.Sink, storing raw page bodies in Postgres.
type PageSink struct {
	*Storage
}

func NewPageSink(s *Storage) *PageSink {
	return &PageSink{Storage: s}
}

func (s *PageSink) Save(ctx context.Context, batch []models.PageResponse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (url, page, body, status_code, load_time_ms, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url) DO UPDATE SET
			body = EXCLUDED.body,
			status_code = EXCLUDED.status_code,
			load_time_ms = EXCLUDED.load_time_ms,
			fetched_at = EXCLUDED.fetched_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range batch {
		_, err := stmt.ExecContext(ctx,
			p.URL,
			p.Page,
			p.Body,
			p.StatusCode,
			p.LoadTime.Milliseconds(),
			p.FetchedAt,
		)
		if err != nil {
			log.Printf("Error saving page %s: %v", p.URL, err)
		}
	}

	return tx.Commit()
}
