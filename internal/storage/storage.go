// Package storage persists the diary's entry collection as a single blob,
// either in a JSON file or in an SQLite key-value table.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/diary/internal/config"
	"github.com/Tiliavir/diary/internal/log"
	"github.com/Tiliavir/diary/internal/model"
)

// ErrCorrupt is returned by Load when the stored value is not a JSON array
// of entries. The unreadable value has been moved aside.
var ErrCorrupt = errors.New("stored entries are corrupt")

// Backend loads and saves the whole entry collection.
type Backend interface {
	// Load returns the stored entries, or nil when nothing was saved yet.
	Load(ctx context.Context) ([]model.Entry, error)
	Save(ctx context.Context, entries []model.Entry) error
	Close() error
}

// Open returns the backend selected by cfg.Storage.Backend.
func Open(cfg config.Config, logger *log.Logger) (Backend, error) {
	dir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		b, err := NewSQLiteBackend(filepath.Join(dir, "diary.db"), logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BackendJSON, "":
		return NewFileBackend(filepath.Join(dir, "entries.json"), logger), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func encodeEntries(entries []model.Entry) ([]byte, error) {
	if entries == nil {
		entries = []model.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	return data, nil
}

func decodeEntries(data []byte) ([]model.Entry, error) {
	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	// "null" decodes without error but is not an array.
	if entries == nil {
		return nil, errors.New("value is not a JSON array")
	}
	return entries, nil
}

// FileBackend keeps entries in one JSON file.
type FileBackend struct {
	path   string
	logger *log.Logger
}

// NewFileBackend returns a backend writing to path.
func NewFileBackend(path string, logger *log.Logger) *FileBackend {
	if logger == nil {
		logger = log.Discard()
	}
	return &FileBackend{path: path, logger: logger.WithComponent("storage")}
}

// Path returns the backing file path.
func (b *FileBackend) Path() string { return b.path }

// Load reads the file. A missing file is an empty collection; a corrupt one
// is backed up to <path>.corrupt and reported as ErrCorrupt.
func (b *FileBackend) Load(ctx context.Context) ([]model.Entry, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", b.path, err)
	}

	entries, err := decodeEntries(data)
	if err != nil {
		// Back up corrupt file and report.
		backupPath := b.path + ".corrupt"
		_ = os.Rename(b.path, backupPath)
		b.logger.WarnContext(ctx, "corrupt data ignored", "path", b.path, "backup", backupPath, "error", err)
		return nil, fmt.Errorf("%w: %s (backed up to %s): %v", ErrCorrupt, b.path, backupPath, err)
	}
	b.logger.DebugContext(ctx, "entries loaded", "path", b.path, "count", len(entries))
	return entries, nil
}

// Save atomically replaces the file with entries.
func (b *FileBackend) Save(ctx context.Context, entries []model.Entry) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename.
	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	b.logger.DebugContext(ctx, "entries saved", "path", b.path, "count", len(entries))
	return nil
}

// Close is a no-op.
func (b *FileBackend) Close() error { return nil }
