package sqlite

import (
	"context"
	"database/sql"

	"github.com/packarr/packarr/pkg/storage"
	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

// New creates a new sqlite database given a path to the database file
func New(filePath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}

	return &SQLite{
		db: db,
	}, nil
}

// Init brings the database up to the current schema version
func (s *SQLite) Init(ctx context.Context) error {
	return runMigrations(s.db)
}
