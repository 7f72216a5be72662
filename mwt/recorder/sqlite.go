package recorder

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLite stores records durably in a SQLite database.
// Context is stored as JSON and must round-trip through encoding/json.
type SQLite[C any] struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite creates or opens the database at path and applies the schema.
//
// The database is configured with:
//   - WAL mode so readers do not block the writer
//   - a single connection, since SQLite allows one writer
//   - a 5-second busy timeout
func OpenSQLite[C any](path string) (*SQLite[C], error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLite[C]{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *SQLite[C]) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts the decision.
func (s *SQLite[C]) Record(c C, action int, probability float64, uniqueKey string) error {
	ctxJSON, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("record decision: marshal context: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	_, err = s.db.ExecContext(context.Background(), `
		INSERT INTO decisions (id, unique_key, action, probability, context, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id.String(), uniqueKey, action, probability, string(ctxJSON), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// Records returns every stored record in insertion order.
func (s *SQLite[C]) Records(ctx context.Context) ([]Record[C], error) {
	return s.query(ctx, `
		SELECT unique_key, action, probability, context FROM decisions ORDER BY seq
	`)
}

// RecordsForKey returns the records of one experimental unit in insertion
// order, for joining with observed rewards.
func (s *SQLite[C]) RecordsForKey(ctx context.Context, uniqueKey string) ([]Record[C], error) {
	return s.query(ctx, `
		SELECT unique_key, action, probability, context FROM decisions WHERE unique_key = ? ORDER BY seq
	`, uniqueKey)
}

func (s *SQLite[C]) query(ctx context.Context, query string, args ...any) ([]Record[C], error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	defer rows.Close()

	records := make([]Record[C], 0)
	for rows.Next() {
		var (
			rec     Record[C]
			ctxJSON string
		)
		if err := rows.Scan(&rec.UniqueKey, &rec.Action, &rec.Probability, &ctxJSON); err != nil {
			return nil, fmt.Errorf("read records: %w", err)
		}
		if err := json.Unmarshal([]byte(ctxJSON), &rec.Context); err != nil {
			return nil, fmt.Errorf("read records: unmarshal context: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return records, nil
}
