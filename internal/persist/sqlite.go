package persist

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skyraid/skyraid/internal/config"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// SQLiteDB wraps a local SQLite database file.
type SQLiteDB struct {
	Conn *sql.DB
	log  *zap.Logger
}

// OpenSQLite opens (or creates) the database at cfg.DSN. ":memory:" gives a
// private in-memory database.
func OpenSQLite(ctx context.Context, cfg config.ScoresConfig, log *zap.Logger) (*SQLiteDB, error) {
	conn, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.DSN, err)
	}
	// one writer; also keeps a :memory: database on a single connection
	conn.SetMaxOpenConns(1)
	if inMemory(cfg.DSN) {
		// a recycled connection would take the schema and rows with it
		conn.SetConnMaxLifetime(0)
		conn.SetConnMaxIdleTime(0)
	} else {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}
	return &SQLiteDB{Conn: conn, log: log}, nil
}

// inMemory reports whether dsn names an in-memory database, whose contents
// live only as long as its connection.
func inMemory(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
}

func (db *SQLiteDB) Close() error {
	return db.Conn.Close()
}
