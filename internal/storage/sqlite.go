package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/Tiliavir/diary/internal/log"
	"github.com/Tiliavir/diary/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	entriesKey = "entries"
	corruptKey = "entries.corrupt"
)

// SQLiteBackend keeps the entry blob in a key-value table.
type SQLiteBackend struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// NewSQLiteBackend opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteBackend(dbPath string, logger *log.Logger) (*SQLiteBackend, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteBackend{db: db, path: dbPath, logger: logger.WithComponent("storage")}, nil
}

// RunMigrations brings the schema at dbPath up to date.
func RunMigrations(dbPath string) error {
	// A separate connection, since closing the migrate instance closes it.
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlitemigrate.WithInstance(migrateDB, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Load reads the entries row. A corrupt value is moved to the
// "entries.corrupt" key and reported as ErrCorrupt.
func (b *SQLiteBackend) Load(ctx context.Context) ([]model.Entry, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, entriesKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", b.path, err)
	}

	entries, err := decodeEntries(data)
	if err != nil {
		if _, mvErr := b.db.ExecContext(ctx,
			`INSERT INTO kv (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			corruptKey, data); mvErr == nil {
			_, _ = b.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, entriesKey)
		}
		b.logger.WarnContext(ctx, "corrupt data ignored", "path", b.path, "backup_key", corruptKey, "error", err)
		return nil, fmt.Errorf("%w: %s (backed up to key %s): %v", ErrCorrupt, b.path, corruptKey, err)
	}
	b.logger.DebugContext(ctx, "entries loaded", "path", b.path, "count", len(entries))
	return entries, nil
}

// Save replaces the entries row.
func (b *SQLiteBackend) Save(ctx context.Context, entries []model.Entry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		entriesKey, data)
	if err != nil {
		return fmt.Errorf("storage error writing %s: %w", b.path, err)
	}
	b.logger.DebugContext(ctx, "entries saved", "path", b.path, "count", len(entries))
	return nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
