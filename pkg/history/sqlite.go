package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)

	"runbeam/harmony-validator/pkg/config"
	"runbeam/harmony-validator/pkg/telemetry/logging"
)

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// SQLiteStore persists runs in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	config config.SQLiteConfig
	logger *logging.Logger

	insertStmt *sql.Stmt
	mu         sync.RWMutex
	closed     bool
}

// NewSQLiteStore opens (creating if needed) the database at cfg.Path and
// initializes its schema.
func NewSQLiteStore(cfg config.SQLiteConfig, logger *logging.Logger) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, NewStorageError("sqlite", "open", fmt.Errorf("db path cannot be empty"))
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverModernc
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = config.DefaultHistorySQLiteBusyTimeout
	}
	if logger == nil {
		logger = logging.Nop()
	}

	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	if dir := filepath.Dir(cfg.Path); dir != "." && cfg.Path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	s := &SQLiteStore{
		db:     db,
		config: cfg,
		logger: logger.With("component", "history.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("history store opened",
		"path", cfg.Path,
		"driver", cfg.Driver,
		"wal_mode", cfg.WALMode,
	)

	return s, nil
}

// buildDSN adds the busy timeout in each driver's own DSN syntax.
func buildDSN(cfg config.SQLiteConfig) (string, error) {
	ms := cfg.BusyTimeout.Milliseconds()
	switch cfg.Driver {
	case DriverModernc:
		return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", cfg.Path, ms), nil
	case DriverMattn:
		return fmt.Sprintf("%s?_busy_timeout=%d", cfg.Path, ms), nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", cfg.Driver)
	}
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	stmt, err := s.db.Prepare(insertRun)
	if err != nil {
		return NewStorageError("sqlite", "prepare", err)
	}
	s.insertStmt = stmt

	return nil
}

// Record inserts run.
func (s *SQLiteStore) Record(ctx context.Context, run *Run) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return NewStorageError("sqlite", "record", ErrClosed)
	}

	_, err := s.insertStmt.ExecContext(ctx,
		run.ID, run.ConfigPath, run.SchemaPath, run.Trigger, string(run.Outcome),
		nullable(run.Kind), nullable(run.Rule), nullable(run.FieldPath), nullable(run.Message),
		run.StartedAt.UnixNano(), int64(run.Duration),
	)
	if err != nil {
		return NewStorageError("sqlite", "record", err)
	}
	return nil
}

// List returns matching runs, newest first.
func (s *SQLiteStore) List(ctx context.Context, query *Query) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("sqlite", "list", ErrClosed)
	}
	if query == nil {
		query = &Query{}
	}

	whereClause, args := buildWhereClause(query)
	sqlQuery := selectRuns
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	sqlQuery += " ORDER BY started_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list", err)
	}

	return runs, nil
}

// Count returns the number of matching runs.
func (s *SQLiteStore) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, NewStorageError("sqlite", "count", ErrClosed)
	}
	if query == nil {
		query = &Query{}
	}

	whereClause, args := buildWhereClause(query)
	sqlQuery := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteBefore removes runs that started before cutoff.
func (s *SQLiteStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, NewStorageError("sqlite", "delete", ErrClosed)
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE started_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	return count, nil
}

// Close releases the database. It is safe to call more than once.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.insertStmt != nil {
		s.insertStmt.Close()
	}
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}

	s.logger.Debug("history store closed")
	return nil
}

func buildWhereClause(query *Query) (string, []any) {
	var conditions []string
	var args []any

	if query.ConfigPath != "" {
		conditions = append(conditions, "config_path = ?")
		args = append(args, query.ConfigPath)
	}
	if query.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, string(query.Outcome))
	}
	if query.Since != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, query.Since.UnixNano())
	}
	if query.Before != nil {
		conditions = append(conditions, "started_at < ?")
		args = append(args, query.Before.UnixNano())
	}

	return strings.Join(conditions, " AND "), args
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var run Run
	var outcome string
	var kind, rule, fieldPath, message sql.NullString
	var startedAt, duration int64

	err := rows.Scan(
		&run.ID, &run.ConfigPath, &run.SchemaPath, &run.Trigger, &outcome,
		&kind, &rule, &fieldPath, &message,
		&startedAt, &duration,
	)
	if err != nil {
		return nil, err
	}

	run.Outcome = Outcome(outcome)
	run.Kind = kind.String
	run.Rule = rule.String
	run.FieldPath = fieldPath.String
	run.Message = message.String
	run.StartedAt = time.Unix(0, startedAt)
	run.Duration = time.Duration(duration)

	return &run, nil
}

// nullable stores empty optional strings as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
