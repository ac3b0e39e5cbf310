package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pagefetch/pkg/models"
)

func TestPageSink_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fetchedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	batch := []models.PageResponse{
		{URL: "http://example.test/api?&page=1", Page: 1, Body: `{"page":1}`, StatusCode: 200, LoadTime: 120 * time.Millisecond, FetchedAt: fetchedAt},
		{URL: "http://example.test/api?&page=2", Page: 2, Body: `{"page":2}`, StatusCode: 200, LoadTime: 80 * time.Millisecond, FetchedAt: fetchedAt},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO pages")
	prep.ExpectExec().
		WithArgs("http://example.test/api?&page=1", 1, `{"page":1}`, 200, int64(120), fetchedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("http://example.test/api?&page=2", 2, `{"page":2}`, 200, int64(80), fetchedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sink := NewPageSink(NewStorage(db))
	err = sink.Save(context.Background(), batch)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageSink_Save_RowErrorStillCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO pages")
	prep.ExpectExec().WillReturnError(errors.New("value too long"))
	mock.ExpectCommit()

	sink := NewPageSink(NewStorage(db))
	err = sink.Save(context.Background(), []models.PageResponse{{URL: "http://example.test/api?&page=1", Page: 1}})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageSink_Save_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	sink := NewPageSink(NewStorage(db))
	err = sink.Save(context.Background(), []models.PageResponse{{URL: "u", Page: 1}})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS pages").WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewStorage(db).EnsureSchema(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
