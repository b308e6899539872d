package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	_ "github.com/lib/pq"

	"teamboard/internal/storage"
)

// Store implements storage.Store on a PostgreSQL database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// Open connects using a lib/pq DSN, e.g.
// "host=localhost user=app password=secret dbname=teamboard sslmode=disable".
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty postgres dsn")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Debug("postgres store ready")
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
            seq BIGSERIAL PRIMARY KEY,
            collection TEXT NOT NULL,
            id TEXT NOT NULL,
            body BYTEA NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            UNIQUE(collection, id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection, seq)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM records WHERE collection = $1 AND id = $2`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return body, nil
}

func (s *Store) Put(ctx context.Context, collection, id string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO records (collection, id, body) VALUES ($1, $2, $3)
	 ON CONFLICT (collection, id) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		collection, id, body)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]storage.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, body FROM records WHERE collection = $1 ORDER BY seq`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var records []storage.Record
	for rows.Next() {
		var r storage.Record
		if err := rows.Scan(&r.ID, &r.Body); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
