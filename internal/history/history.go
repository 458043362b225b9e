package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one evaluated segment. Error is empty when evaluation succeeded.
type Entry struct {
	ID        int64
	CreatedAt time.Time
	Input     string
	Result    string
	Kind      string
	Error     string
}

type dialect struct {
	driver string
	ddl    string
	// placeholder returns the bind marker for the n-th (1-based) parameter.
	placeholder func(n int) string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite3",
		ddl: `CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL,
	input TEXT NOT NULL,
	result TEXT NOT NULL,
	kind TEXT NOT NULL,
	error TEXT NOT NULL
)`,
		placeholder: func(int) string { return "?" },
	}
	mysqlDialect = dialect{
		driver: "mysql",
		ddl: `CREATE TABLE IF NOT EXISTS history (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	created_at DATETIME(6) NOT NULL,
	input TEXT NOT NULL,
	result TEXT NOT NULL,
	kind VARCHAR(16) NOT NULL,
	error TEXT NOT NULL
)`,
		placeholder: func(int) string { return "?" },
	}
	postgresDialect = dialect{
		driver: "postgres",
		ddl: `CREATE TABLE IF NOT EXISTS history (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	input TEXT NOT NULL,
	result TEXT NOT NULL,
	kind TEXT NOT NULL,
	error TEXT NOT NULL
)`,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

// parseDSN picks a dialect from the DSN scheme and returns the data source name
// in the form the driver expects. A DSN without a scheme is a sqlite path.
func parseDSN(dsn string) (dialect, string, error) {
	switch {
	case dsn == "":
		return dialect{}, "", fmt.Errorf("empty history dsn")
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqliteDialect, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "mysql://"):
		source := strings.TrimPrefix(dsn, "mysql://")
		if !strings.Contains(source, "parseTime=") {
			if strings.Contains(source, "?") {
				source += "&parseTime=true"
			} else {
				source += "?parseTime=true"
			}
		}
		return mysqlDialect, source, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgresDialect, dsn, nil
	case strings.Contains(dsn, "://"):
		return dialect{}, "", fmt.Errorf("unsupported history dsn scheme: %s", dsn[:strings.Index(dsn, "://")])
	default:
		return sqliteDialect, dsn, nil
	}
}

// Store persists evaluated segments to a SQL table named history.
type Store struct {
	db      *sql.DB
	dialect dialect
}

func Open(ctx context.Context, dsn string) (*Store, error) {
	d, source, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, source)
	if err != nil {
		slog.Error("failed to open history connection",
			slog.String("driver", d.driver),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("open history store: %w", err)
	}
	if d.driver == sqliteDialect.driver {
		// each sqlite connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, d.ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	slog.Debug("history store opened", slog.String("driver", d.driver))
	return &Store{db: db, dialect: d}, nil
}

func (s *Store) Append(ctx context.Context, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	p := s.dialect.placeholder
	query := fmt.Sprintf(
		"INSERT INTO history (created_at, input, result, kind, error) VALUES (%s, %s, %s, %s, %s)",
		p(1), p(2), p(3), p(4), p(5),
	)
	args := []any{e.CreatedAt, e.Input, e.Result, e.Kind, e.Error}

	if s.dialect.driver == postgresDialect.driver {
		// lib/pq does not implement LastInsertId
		var id int64
		err := s.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("append history: %w", err)
		}
		return id, nil
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("append history: %w", err)
	}
	id, _ := result.LastInsertId()
	return id, nil
}

// Recent returns up to n of the latest entries, oldest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT id, created_at, input, result, kind, error FROM history ORDER BY id DESC LIMIT %s",
		s.dialect.placeholder(1),
	)
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Input, &e.Result, &e.Kind, &e.Error); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
