package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	sqlitedriver "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/ext/unicode"
)

// Dialect identifies the SQL engine behind a DB.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type DB struct {
	SQL     *sql.DB
	Dialect Dialect
}

// ParseURL maps DATABASE_URL to a driver name, DSN and dialect.
// postgres:// and postgresql:// go to pgx; sqlite:<path> and file:<path>
// go to SQLite.
func ParseURL(databaseURL string) (driver, dsn string, dialect Dialect, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "pgx", databaseURL, Postgres, nil
	case strings.HasPrefix(databaseURL, "file:"):
		return "sqlite3", databaseURL, SQLite, nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		path := strings.TrimPrefix(strings.TrimPrefix(databaseURL, "sqlite:"), "//")
		if path == "" {
			return "", "", "", fmt.Errorf("sqlite url %q has no path", databaseURL)
		}
		return "sqlite3", "file:" + path + "?_pragma=busy_timeout(5000)", SQLite, nil
	default:
		return "", "", "", fmt.Errorf("unsupported database url scheme in %q", redact(databaseURL))
	}
}

func Open(ctx context.Context, databaseURL string, maxOpen, maxIdle int, maxLifetime, maxIdleTime time.Duration) (*DB, error) {
	driver, dsn, dialect, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if dialect == SQLite {
		// Built-in lower() and LIKE only fold ASCII; fold Unicode like Postgres.
		db, err = sqlitedriver.Open(dsn, unicode.Register)
	} else {
		db, err = sql.Open(driver, dsn)
	}
	if err != nil {
		return nil, err
	}

	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY.
	if dialect == SQLite {
		maxOpen, maxIdle = 1, 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	db.SetConnMaxIdleTime(maxIdleTime)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{SQL: db, Dialect: dialect}, nil
}

func (d *DB) Close() error {
	return d.SQL.Close()
}

// Ping reports whether the database answers within the context deadline.
func (d *DB) Ping(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

func redact(databaseURL string) string {
	if i := strings.Index(databaseURL, "@"); i >= 0 {
		if j := strings.Index(databaseURL, "://"); j >= 0 && j < i {
			return databaseURL[:j+3] + "***" + databaseURL[i:]
		}
	}
	return databaseURL
}
