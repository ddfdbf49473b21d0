package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const mysqlSchema = `CREATE TABLE IF NOT EXISTS collections (
	name       VARCHAR(64) NOT NULL PRIMARY KEY,
	body       LONGTEXT    NOT NULL,
	updated_at DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// MySQLStore keeps every collection as one row of the collections table.
// Update locks the row with SELECT ... FOR UPDATE, which serialises writers
// across processes as well as goroutines.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore wraps db and makes sure the collections table exists.
func NewMySQLStore(ctx context.Context, db *sql.DB) (*MySQLStore, error) {
	if _, err := db.ExecContext(ctx, mysqlSchema); err != nil {
		return nil, fmt.Errorf("create collections table: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

// Load implements Store.
func (s *MySQLStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM collections WHERE name = ?", collection).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	return []byte(body), nil
}

// Update implements Store.
func (s *MySQLStore) Update(ctx context.Context, collection string, fn UpdateFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Make sure there is a row to lock; a missing collection reads as nil below.
	if _, err := tx.ExecContext(ctx, "INSERT IGNORE INTO collections (name, body) VALUES (?, '')", collection); err != nil {
		return fmt.Errorf("ensure %s row: %w", collection, err)
	}
	var body string
	if err := tx.QueryRowContext(ctx, "SELECT body FROM collections WHERE name = ? FOR UPDATE", collection).Scan(&body); err != nil {
		return fmt.Errorf("lock %s: %w", collection, err)
	}
	var cur []byte
	if body != "" {
		cur = []byte(body)
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE collections SET body = ? WHERE name = ?", string(next), collection); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", collection, err)
	}
	committed = true
	return nil
}

// Ping implements Store.
func (s *MySQLStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close implements Store.
func (s *MySQLStore) Close() error { return s.db.Close() }
