package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seantiz/mxm/internal/model"

	_ "modernc.org/sqlite"
)

const createThreadsTable = `
CREATE TABLE IF NOT EXISTS threads (
    key        TEXT PRIMARY KEY,
    size       INTEGER NOT NULL,
    created_at DATETIME NOT NULL
)`

const createCommentsTable = `
CREATE TABLE IF NOT EXISTS comments (
    thread_key TEXT NOT NULL REFERENCES threads(key),
    seq        INTEGER NOT NULL,
    id         TEXT NOT NULL,
    author     TEXT NOT NULL,
    message    TEXT NOT NULL,
    ts_unix_ns INTEGER NOT NULL,
    PRIMARY KEY (thread_key, seq)
)`

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// busyTimeoutMS is how long a connection waits on a locked database.
const busyTimeoutMS = 5000

// NewSQLiteStore opens the SQLite database at dbPath and runs migrations.
// The pool holds a single connection so an in-memory database is shared
// and concurrent writers to a file queue instead of failing with
// SQLITE_BUSY.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if _, err := db.Exec(createThreadsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create threads table: %w", err)
	}

	if _, err := db.Exec(createCommentsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create comments table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// sqliteDSN attaches the connection pragmas to dbPath so they apply to
// every connection the pool opens.
func sqliteDSN(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", dbPath, sep, busyTimeoutMS)
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetThread returns the comments cached under key in generation order.
func (s *SQLiteStore) GetThread(ctx context.Context, key string) ([]model.Comment, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	var size int
	err = tx.QueryRowContext(ctx, "SELECT size FROM threads WHERE key = ?", key).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, author, message, ts_unix_ns
		FROM comments WHERE thread_key = ? ORDER BY seq ASC`, key,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	thread := make([]model.Comment, 0, size)
	for rows.Next() {
		var c model.Comment
		var ns int64
		if err := rows.Scan(&c.ID, &c.Author, &c.Message, &ns); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.TS = time.Unix(0, ns).UTC()
		thread = append(thread, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return thread, nil
}

// PutThread writes thread under key unless the key is already present.
func (s *SQLiteStore) PutThread(ctx context.Context, key string, thread []model.Comment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO threads (key, size, created_at) VALUES (?, ?, ?)",
		key, len(thread), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert thread: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return nil
	}

	for i, c := range thread {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comments (thread_key, seq, id, author, message, ts_unix_ns)
			VALUES (?, ?, ?, ?, ?, ?)`,
			key, i, c.ID, c.Author, c.Message, c.TS.UnixNano(),
		); err != nil {
			return fmt.Errorf("insert comment %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// Stats counts cached threads and comments.
func (s *SQLiteStore) Stats(ctx context.Context) (CacheStats, error) {
	var st CacheStats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(size), 0) FROM threads",
	).Scan(&st.Threads, &st.Comments)
	if err != nil {
		return CacheStats{}, fmt.Errorf("thread stats: %w", err)
	}
	return st, nil
}

// Open returns a SQLiteStore for dbPath, or a MemoryStore when dbPath is
// empty.
func Open(dbPath string) (Store, error) {
	if dbPath == "" {
		return NewMemoryStore(), nil
	}
	return NewSQLiteStore(dbPath)
}
